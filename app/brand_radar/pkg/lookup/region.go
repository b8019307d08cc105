package lookup

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// GlobalName 全球范围的展示名，对应空代码
const GlobalName = "Global"

//go:embed country_codes.json
var defaultCountryCodes []byte

// Regions 国家名与代码的双向映射，加载后只读
type Regions struct {
	byName map[string]string
	byCode map[string]string
	names  []string
}

// LoadRegions 从文件加载，path 为空时使用内置表
func LoadRegions(path string) (*Regions, error) {
	if path == "" {
		return ParseRegions(defaultCountryCodes)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read country codes: %w", err)
	}
	return ParseRegions(data)
}

// ParseRegions 解析 {"India": "IN", ...}，名称或代码重复时报错
func ParseRegions(data []byte) (*Regions, error) {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse country codes: %w", err)
	}

	r := &Regions{
		byName: map[string]string{GlobalName: ""},
		byCode: map[string]string{"": GlobalName},
	}
	for name, code := range raw {
		name = strings.TrimSpace(name)
		code = strings.ToUpper(strings.TrimSpace(code))
		if name == "" || code == "" {
			return nil, fmt.Errorf("country codes: empty name or code (%q: %q)", name, code)
		}
		if name == GlobalName {
			return nil, fmt.Errorf("country codes: %q is reserved", GlobalName)
		}
		if _, ok := r.byName[name]; ok {
			return nil, fmt.Errorf("country codes: duplicate name %q", name)
		}
		if prev, ok := r.byCode[code]; ok {
			return nil, fmt.Errorf("country codes: code %s used by both %q and %q", code, prev, name)
		}
		r.byName[name] = code
		r.byCode[code] = name
		r.names = append(r.names, name)
	}
	sort.Strings(r.names)
	return r, nil
}

// Code 名称转代码
func (r *Regions) Code(name string) (string, bool) {
	code, ok := r.byName[name]
	return code, ok
}

// Name 代码转名称，空代码返回 Global
func (r *Regions) Name(code string) (string, bool) {
	name, ok := r.byCode[strings.ToUpper(code)]
	return name, ok
}

// Resolve 接受名称或代码，返回代码
func (r *Regions) Resolve(s string) (string, error) {
	s = strings.TrimSpace(s)
	if code, ok := r.byName[s]; ok {
		return code, nil
	}
	if _, ok := r.byCode[strings.ToUpper(s)]; ok {
		return strings.ToUpper(s), nil
	}
	return "", fmt.Errorf("unknown region: %q", s)
}

// DisplayName 报告中使用的地区名: "India(IN)"，全球为 "Global"
func (r *Regions) DisplayName(code string) string {
	name, ok := r.Name(code)
	if !ok {
		return code
	}
	if name == GlobalName {
		return name
	}
	return fmt.Sprintf("%s(%s)", name, strings.ToUpper(code))
}

// Names 展示用名称列表，Global 在首位
func (r *Regions) Names() []string {
	return append([]string{GlobalName}, r.names...)
}
