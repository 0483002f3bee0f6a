package kwsub_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lwmacct/251220-go-pkg-kwsub/pkg/diag"
	"github.com/lwmacct/251220-go-pkg-kwsub/pkg/kwsub"
)

func TestSubstitute_TracingDoesNotChangeOutput(t *testing.T) {
	database := db(l{
		m{"name": "inst1", "sub": l{m{"n": "a"}, m{"n": "b"}}},
		m{"name": "inst2"},
	})
	template := "@@name@@ @@sub.n@@"
	quiet := kwsub.Substitute(database, template, "report")

	var buf bytes.Buffer
	diag.Init(diag.Debug, diag.WithWriter(&buf))
	t.Cleanup(func() { diag.Init(diag.DefaultVerbosity) })

	traced := kwsub.Substitute(database, template, "report")
	assert.Equal(t, quiet, traced)
	assert.Equal(t, []string{"inst1 a", "inst1 b", "inst2 @@sub.n@@"}, traced)

	out := buf.String()
	assert.Contains(t, out, "category=report")
	assert.Contains(t, out, "template:")
	assert.Contains(t, out, "lines: 3")
}

func TestSubstitute_DiagnosticsDisabled(t *testing.T) {
	var buf bytes.Buffer
	diag.Init(diag.Debug, diag.WithWriter(&buf))
	t.Cleanup(func() { diag.Init(diag.DefaultVerbosity) })

	e, err := kwsub.New(kwsub.WithDiagnostics(false))
	assert.NoError(t, err)
	_ = e.Substitute(db(m{"a": "b"}), "@@a@@", "report")

	assert.Empty(t, buf.String())
}
