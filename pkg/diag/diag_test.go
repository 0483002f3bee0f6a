package diag_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251220-go-pkg-kwsub/pkg/diag"
)

// setup 将诊断输出重定向到缓冲区，测试结束后恢复默认值。
func setup(t *testing.T, v diag.Verbosity) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	diag.Init(v, diag.WithWriter(&buf))
	t.Cleanup(func() { diag.Init(diag.DefaultVerbosity) })

	return &buf
}

func TestVerbosity_Order(t *testing.T) {
	assert.Less(t, diag.Debug, diag.Info)
	assert.Less(t, diag.Info, diag.Warning)
	assert.Less(t, diag.Warning, diag.Error)
	assert.Less(t, diag.Error, diag.Critical)
}

func TestParseVerbosity(t *testing.T) {
	tests := []struct {
		input   string
		want    diag.Verbosity
		wantErr bool
	}{
		{input: "debug", want: diag.Debug},
		{input: "INFO", want: diag.Info},
		{input: "warning", want: diag.Warning},
		{input: "warn", want: diag.Warning},
		{input: " error ", want: diag.Error},
		{input: "critical", want: diag.Critical},
		{input: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := diag.ParseVerbosity(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, diag.ErrUnknownVerbosity)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, mustParse(t, got.String()))
		})
	}
}

func mustParse(t *testing.T, s string) diag.Verbosity {
	t.Helper()
	v, err := diag.ParseVerbosity(s)
	require.NoError(t, err)

	return v
}

func TestVerbosity_Level(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, diag.Debug.Level())
	assert.Equal(t, slog.LevelInfo, diag.Info.Level())
	assert.Equal(t, slog.LevelWarn, diag.Warning.Level())
	assert.Equal(t, slog.LevelError, diag.Error.Level())
	assert.Greater(t, diag.Critical.Level(), slog.LevelError)
	assert.Equal(t, "verbosity(42)", diag.Verbosity(42).String())
}

func TestPrint_Threshold(t *testing.T) {
	buf := setup(t, diag.Warning)

	diag.Print(diag.Debug, "hidden", 1)
	diag.Print(diag.Info, "hidden", 2)
	assert.Empty(t, buf.String())

	diag.Print(diag.Warning, "shown", 3)
	diag.Print(diag.Error, "also", "shown")
	out := buf.String()
	assert.Contains(t, out, `msg="shown 3"`)
	assert.Contains(t, out, `msg="also shown"`)
	assert.Contains(t, out, "level=WARN")
}

func TestPrint_DebugPassesThroughSinkLevel(t *testing.T) {
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelError})
	diag.Init(diag.Debug, diag.WithHandler(h))
	t.Cleanup(func() { diag.Init(diag.DefaultVerbosity) })

	diag.Print(diag.Debug, "template:", "@@a@@")
	assert.Contains(t, buf.String(), `msg="template: @@a@@"`)
}

func TestPrintc_Category(t *testing.T) {
	buf := setup(t, diag.Debug)

	diag.Printc(diag.Info, "report", "lines:", 4)
	assert.Contains(t, buf.String(), "category=report")
	assert.Contains(t, buf.String(), `msg="lines: 4"`)
}

func TestEnabled(t *testing.T) {
	setup(t, diag.Info)

	assert.Equal(t, diag.Info, diag.Threshold())
	assert.False(t, diag.Enabled(diag.Debug))
	assert.True(t, diag.Enabled(diag.Info))
	assert.True(t, diag.Enabled(diag.Critical))
}
