package status

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Sink 单向的进度/错误消息通道，核心逻辑不依赖消息是否被展示
type Sink interface {
	Notify(msg string)
}

// Func 函数适配器
type Func func(msg string)

// Notify 实现 Sink
func (f Func) Notify(msg string) { f(msg) }

// Discard 丢弃所有消息
var Discard Sink = Func(func(string) {})

// LogSink 将消息写入 logrus
type LogSink struct {
	Entry *logrus.Entry
}

// NewLogSink 以给定字段创建 LogSink
func NewLogSink(l *logrus.Logger, fields logrus.Fields) *LogSink {
	return &LogSink{Entry: l.WithFields(fields)}
}

// Notify 实现 Sink
func (s *LogSink) Notify(msg string) {
	s.Entry.Info(msg)
}

// Recorder 记录所有消息，并发安全
type Recorder struct {
	mu       sync.Mutex
	messages []string
}

// Notify 实现 Sink
func (r *Recorder) Notify(msg string) {
	r.mu.Lock()
	r.messages = append(r.messages, msg)
	r.mu.Unlock()
}

// Messages 返回已记录消息的副本
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.messages...)
}

// Tee 同时写入多个 Sink，nil 会被忽略
func Tee(sinks ...Sink) Sink {
	var live []Sink
	for _, s := range sinks {
		if s != nil {
			live = append(live, s)
		}
	}
	return Func(func(msg string) {
		for _, s := range live {
			s.Notify(msg)
		}
	})
}
