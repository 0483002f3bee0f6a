// Package diag 提供分级诊断输出。
//
// 进程级阈值在启动时通过 [Init] 设置一次，之后只读：
//
//	diag.Init(diag.Warning)
//	diag.Print(diag.Debug, "template:", tpl)          // 被丢弃
//	diag.Printc(diag.Warning, "report", "empty db")   // 输出
//
// 消息参数以空格连接（与 fmt.Sprintln 相同，但不含结尾换行），
// 输出交给 slog.Handler。阈值是唯一的过滤条件，Handler 自身的级别不再生效。
package diag

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

// ErrUnknownVerbosity 表示无法识别的级别名称。
var ErrUnknownVerbosity = errors.New("unknown verbosity")

// Verbosity 诊断级别，数值越大越严重。
type Verbosity int

const (
	Debug Verbosity = iota
	Info
	Warning
	Error
	Critical
)

var verbosityNames = [...]string{"debug", "info", "warning", "error", "critical"}

func (v Verbosity) String() string {
	if v >= Debug && int(v) < len(verbosityNames) {
		return verbosityNames[v]
	}

	return "verbosity(" + strconv.Itoa(int(v)) + ")"
}

// Level 返回对应的 slog 级别
func (v Verbosity) Level() slog.Level {
	switch {
	case v <= Debug:
		return slog.LevelDebug
	case v == Info:
		return slog.LevelInfo
	case v == Warning:
		return slog.LevelWarn
	case v == Error:
		return slog.LevelError
	default:
		return slog.LevelError + 4
	}
}

// ParseVerbosity 解析级别名称，忽略大小写，"warn" 视同 "warning"。
func ParseVerbosity(s string) (Verbosity, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "warn" {
		return Warning, nil
	}
	for i, n := range verbosityNames {
		if n == name {
			return Verbosity(i), nil
		}
	}

	return Debug, fmt.Errorf("%w: %q", ErrUnknownVerbosity, s)
}

// ═══════════════════════════════════════════════════════════════════════════
// 进程级状态
// ═══════════════════════════════════════════════════════════════════════════

// DefaultVerbosity 未调用 Init 时的阈值
const DefaultVerbosity = Warning

var (
	threshold atomic.Int64
	sink      atomic.Pointer[slog.Handler]
)

func init() {
	threshold.Store(int64(DefaultVerbosity))
}

type options struct {
	handler slog.Handler
}

// Option Init 的选项
type Option func(*options)

// WithHandler 指定输出 Handler，默认使用 slog.Default() 的 Handler。
func WithHandler(h slog.Handler) Option {
	return func(o *options) { o.handler = h }
}

// WithWriter 以文本格式输出到 w。
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		o.handler = slog.NewTextHandler(w, nil)
	}
}

// Init 设置进程级阈值和输出。应在启动时调用一次。
func Init(v Verbosity, opts ...Option) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.handler != nil {
		sink.Store(&o.handler)
	} else {
		sink.Store(nil)
	}
	threshold.Store(int64(v))
}

// Threshold 返回当前阈值
func Threshold() Verbosity { return Verbosity(threshold.Load()) }

// Enabled 报告 v 级别的消息是否会被输出。
func Enabled(v Verbosity) bool { return v >= Threshold() }

// Print 输出一条诊断消息。
func Print(v Verbosity, args ...any) {
	emit(v, "", args)
}

// Printc 输出一条带类别标签的诊断消息。类别只用于标注输出。
func Printc(v Verbosity, category string, args ...any) {
	emit(v, category, args)
}

func emit(v Verbosity, category string, args []any) {
	if !Enabled(v) {
		return
	}

	h := slog.Default().Handler()
	if p := sink.Load(); p != nil {
		h = *p
	}

	var pcs [1]uintptr
	runtime.Callers(3, pcs[:]) // emit → Print/Printc → 调用方
	r := slog.NewRecord(time.Now(), v.Level(), message(args), pcs[0])
	if category != "" {
		r.AddAttrs(slog.String("category", category))
	}
	_ = h.Handle(context.Background(), r)
}

// message 以空格连接参数，去掉 fmt.Sprintln 的结尾换行。
func message(args []any) string {
	s := fmt.Sprintln(args...)

	return s[:len(s)-1]
}
