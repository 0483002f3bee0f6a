package kwsub_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lwmacct/251220-go-pkg-kwsub/pkg/kwsub"
)

func TestResolve(t *testing.T) {
	record := kwsub.MustFromAny(m{
		"name": "inst1",
		"a":    m{"a1": "lollipop", "a2": m{"deep": "x"}},
		"subs": l{
			m{"name": "s1", "ports": l{m{"id": "p1"}, m{"id": "p2"}}},
			m{"name": "s2"},
			m{"name": "s3", "ports": l{m{"id": "p3"}}},
		},
		"tags":  l{"t1", "t2"},
		"empty": l{},
	})

	tests := []struct {
		path   string
		want   []string
		wantOK bool
	}{
		{path: "name", want: []string{"inst1"}, wantOK: true},
		{path: "a.a1", want: []string{"lollipop"}, wantOK: true},
		{path: "a.a2.deep", want: []string{"x"}, wantOK: true},
		{path: "subs.name", want: []string{"s1", "s2", "s3"}, wantOK: true},
		{path: "subs.ports.id", want: []string{"p1", "p2", "p3"}, wantOK: true},
		{path: "tags", want: []string{"t1", "t2"}, wantOK: true},
		{path: "missing"},
		{path: "a.missing"},
		{path: "name.more"},
		{path: "a"},
		{path: "subs"},
		{path: "subs.missing"},
		{path: "empty.name"},
		{path: ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := kwsub.Resolve(record, tt.path)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_DoesNotMutateRecord(t *testing.T) {
	record := kwsub.MustFromAny(m{"a": l{m{"n": "1"}, m{"n": "2"}}})
	before := record.String()

	_, _ = kwsub.Resolve(record, "a.n")
	_ = kwsub.Substitute(kwsub.NewDatabase(record), "@@a.n@@", "")

	assert.Equal(t, before, record.String())
}
