package kwsub

import (
	"errors"
	"regexp"
)

// DefaultDelimiter 默认占位符分隔符
const DefaultDelimiter = "@@"

// ErrInvalidDelimiter 表示分隔符为空。
var ErrInvalidDelimiter = errors.New("invalid delimiter")

// Placeholder 模板中的一次占位符出现。
type Placeholder struct {
	Path  string // 点分路径，不含分隔符
	Text  string // 源文本，含分隔符；同一 Text 即同一占位符
	Start int    // Text 在模板中的起始字节偏移
	End   int    // Text 在模板中的结束字节偏移（不含）
}

// Template 扫描后的模板。
//
// Segments 总是比 Placeholders 多一个：
// Source == Segments[0] + Placeholders[0].Text + Segments[1] + ... + Segments[n]
type Template struct {
	Source       string
	Segments     []string
	Placeholders []Placeholder
}

// Paths 返回去重后的占位符，按首次出现排序。
func (t Template) Paths() []Placeholder {
	seen := make(map[string]bool, len(t.Placeholders))
	var out []Placeholder
	for _, p := range t.Placeholders {
		if seen[p.Text] {
			continue
		}
		seen[p.Text] = true
		out = append(out, p)
	}

	return out
}

// Scanner 按固定分隔符提取占位符。
type Scanner struct {
	delimiter string
	re        *regexp.Regexp
}

// NewScanner 创建使用指定分隔符的扫描器。
func NewScanner(delimiter string) (*Scanner, error) {
	if delimiter == "" {
		return nil, ErrInvalidDelimiter
	}
	q := regexp.QuoteMeta(delimiter)

	return &Scanner{
		delimiter: delimiter,
		re:        regexp.MustCompile(q + `(.*?)` + q),
	}, nil
}

var defaultScanner, _ = NewScanner(DefaultDelimiter)

// Scan 使用默认分隔符扫描模板。
func Scan(template string) Template {
	return defaultScanner.Scan(template)
}

// Delimiter 返回扫描器的分隔符
func (s *Scanner) Delimiter() string { return s.delimiter }

// Scan 从左到右扫描模板。
//
// 非贪婪匹配：每个开分隔符与最近的下一个分隔符配对，
// 已作为开分隔符消费的字符不会再作为前一个占位符的闭分隔符。
// 路径中不允许换行。
func (s *Scanner) Scan(template string) Template {
	t := Template{Source: template}
	last := 0
	for _, m := range s.re.FindAllStringSubmatchIndex(template, -1) {
		t.Segments = append(t.Segments, template[last:m[0]])
		t.Placeholders = append(t.Placeholders, Placeholder{
			Path:  template[m[2]:m[3]],
			Text:  template[m[0]:m[1]],
			Start: m[0],
			End:   m[1],
		})
		last = m[1]
	}
	t.Segments = append(t.Segments, template[last:])

	return t
}
