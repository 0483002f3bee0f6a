package tmpl

import (
	"bytes"
	"strings"
	"text/template"
)

// Expand 展开 text 中的模板表达式。
//
// environ 是 KEY=VALUE 形式的环境变量列表 (通常为 os.Environ())，
// 变量既可通过 {{.VAR}} 访问，也可通过 env 函数访问。name 用于错误信息，
// 一般传入配置文件路径。不含 "{{" 的文本直接返回。
func Expand(name, text string, environ []string) (string, error) {
	if !strings.Contains(text, "{{") {
		return text, nil
	}

	vars := envMap(environ)
	t, err := template.New(name).
		Option("missingkey=zero").
		Funcs(funcs(vars)).
		Parse(text)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, vars); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func envMap(environ []string) map[string]string {
	vars := make(map[string]string, len(environ))
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			vars[k] = v
		}
	}

	return vars
}

// ═══════════════════════════════════════════════════════════════════════════
// 模板函数
// ═══════════════════════════════════════════════════════════════════════════

func funcs(vars map[string]string) template.FuncMap {
	return template.FuncMap{
		// env 读取 vars 而不是进程环境，调用方可以注入环境。
		"env": func(key string, fallback ...string) string {
			if v := vars[key]; v != "" {
				return v
			}
			if len(fallback) > 0 {
				return fallback[0]
			}
			return ""
		},
		"default":  defaultValue,
		"coalesce": coalesce,
	}
}

// defaultValue 参数顺序与 Sprig 相同：default(默认值, 实际值)。
func defaultValue(fallback, value any) any {
	if empty(value) {
		return fallback
	}

	return value
}

// coalesce 返回第一个非空值，全部为空时返回空字符串。
func coalesce(values ...any) any {
	for _, v := range values {
		if !empty(v) {
			return v
		}
	}

	return ""
}

func empty(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)

	return ok && s == ""
}
