package kwsub

import (
	"math"
	"strings"

	"github.com/lwmacct/251220-go-pkg-kwsub/pkg/diag"
)

// ═══════════════════════════════════════════════════════════════════════════
// 引擎
// ═══════════════════════════════════════════════════════════════════════════

// Engine 关键字替换引擎。
//
// Engine 创建后不可变，不保留调用间状态，可被多个 goroutine 并发使用。
type Engine struct {
	scanner *Scanner
	trace   bool
}

// Option 引擎选项
type Option func(*engineOptions)

type engineOptions struct {
	delimiter string
	trace     bool
}

// WithDelimiter 设置占位符分隔符，默认 "@@"。
func WithDelimiter(d string) Option {
	return func(o *engineOptions) { o.delimiter = d }
}

// WithDiagnostics 控制是否通过 diag 输出跟踪信息，默认开启。
// 跟踪只在 diag 阈值为 Debug 时可见，不影响替换结果。
func WithDiagnostics(on bool) Option {
	return func(o *engineOptions) { o.trace = on }
}

// New 创建引擎
func New(opts ...Option) (*Engine, error) {
	o := engineOptions{delimiter: DefaultDelimiter, trace: true}
	for _, opt := range opts {
		opt(&o)
	}

	s, err := NewScanner(o.delimiter)
	if err != nil {
		return nil, err
	}

	return &Engine{scanner: s, trace: o.trace}, nil
}

var defaultEngine = &Engine{scanner: defaultScanner, trace: true}

// Substitute 使用默认引擎渲染模板，见 [Engine.Substitute]。
func Substitute(db Database, template, label string) []string {
	return defaultEngine.Substitute(db, template, label)
}

// Scanner 返回引擎使用的扫描器
func (e *Engine) Scanner() *Scanner { return e.scanner }

// Substitute 对数据库中每个根记录渲染模板，按记录顺序拼接所有输出行。
//
// label 仅用于标注诊断输出，不影响解析和渲染。
func (e *Engine) Substitute(db Database, template, label string) []string {
	tpl := e.scanner.Scan(template)
	if e.tracing() {
		diag.Printc(diag.Debug, label, "template:", template)
		diag.Printc(diag.Debug, label, "records:", len(db), "placeholders:", len(tpl.Placeholders))
	}

	var lines []string
	for _, record := range db {
		lines = append(lines, e.SubstituteRecord(record, tpl, label)...)
	}

	if e.tracing() {
		diag.Printc(diag.Debug, label, "lines:", len(lines))
	}

	return lines
}

// SubstituteRecord 对单个根记录渲染已扫描的模板。
//
// 输出行数等于所有已解析占位符值序列长度之积（未解析的占位符计为 1）。
func (e *Engine) SubstituteRecord(record Value, tpl Template, label string) []string {
	axes, picks := resolveAxes(record, tpl)
	if _, ok := product(axes); !ok {
		diag.Printc(diag.Warning, label, "cross product of", len(axes), "placeholders exceeds int range")
	}
	if e.tracing() {
		diag.Printc(diag.Debug, label, "record:", record)
		for _, a := range axes {
			diag.Printc(diag.Debug, label, "resolved", a.text, "->", a.values)
		}
	}

	return render(tpl, axes, picks)
}

func (e *Engine) tracing() bool {
	return e.trace && diag.Enabled(diag.Debug)
}

// ═══════════════════════════════════════════════════════════════════════════
// 笛卡尔积
// ═══════════════════════════════════════════════════════════════════════════

// axis 一个已解析的占位符及其值序列
type axis struct {
	text   string
	values []string
}

// resolveAxes 按首次出现顺序解析去重后的占位符。
//
// picks[i] 是第 i 个占位符出现所属轴的下标，未解析时为 -1。
func resolveAxes(record Value, tpl Template) ([]axis, []int) {
	index := make(map[string]int, len(tpl.Placeholders))
	picks := make([]int, len(tpl.Placeholders))
	var axes []axis

	for i, p := range tpl.Placeholders {
		if idx, seen := index[p.Text]; seen {
			picks[i] = idx
			continue
		}

		idx := -1
		if values, ok := Resolve(record, p.Path); ok {
			idx = len(axes)
			axes = append(axes, axis{text: p.Text, values: values})
		}
		index[p.Text] = idx
		picks[i] = idx
	}

	return axes, picks
}

// LineCount 返回 record 渲染 tpl 将得到的行数，不实际渲染。
//
// 乘积超出 int 范围时返回 math.MaxInt 和 false。
func LineCount(record Value, tpl Template) (int, bool) {
	axes, _ := resolveAxes(record, tpl)

	return product(axes)
}

// product 计算各轴长度之积。已解析的轴至少有一个值。
func product(axes []axis) (int, bool) {
	n := 1
	for _, a := range axes {
		if n > math.MaxInt/len(a.values) {
			return math.MaxInt, false
		}
		n *= len(a.values)
	}

	return n, true
}

// maxPrealloc 输出切片预分配容量的上限
const maxPrealloc = 1 << 12

// render 按里程表顺序枚举所有组合：最右轴变化最快。
func render(tpl Template, axes []axis, picks []int) []string {
	n, _ := product(axes)
	lines := make([]string, 0, min(n, maxPrealloc))
	counter := make([]int, len(axes))
	var b strings.Builder

	for {
		b.Reset()
		for i, p := range tpl.Placeholders {
			b.WriteString(tpl.Segments[i])
			if ax := picks[i]; ax >= 0 {
				b.WriteString(axes[ax].values[counter[ax]])
			} else {
				b.WriteString(p.Text)
			}
		}
		b.WriteString(tpl.Segments[len(tpl.Segments)-1])
		lines = append(lines, b.String())

		if !advance(counter, axes) {
			return lines
		}
	}
}

// advance 将里程表进一位，最左轴也回绕时返回 false。
func advance(counter []int, axes []axis) bool {
	for ax := len(counter) - 1; ax >= 0; ax-- {
		counter[ax]++
		if counter[ax] < len(axes[ax].values) {
			return true
		}
		counter[ax] = 0
	}

	return false
}

// Join 将输出行拼接为报告文本，每行以换行结尾。
func Join(lines []string) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}

	return b.String()
}
