package kwsub_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"

	"github.com/lwmacct/251220-go-pkg-kwsub/pkg/kwsub"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestSubstitute_Concurrent(t *testing.T) {
	record := kwsub.MustFromAny(m{
		"name": "inst",
		"a":    l{m{"k": "1"}, m{"k": "2"}, m{"k": "3"}},
		"b":    l{m{"k": "x"}, m{"k": "y"}},
	})
	database := kwsub.NewDatabase(record)
	want := kwsub.Substitute(database, "@@name@@ @@a.k@@ @@b.k@@", "")
	require.Len(t, want, 6)

	e, err := kwsub.New(kwsub.WithDiagnostics(false))
	require.NoError(t, err)

	const workers = 16
	results := make([][]string, workers)

	var g errgroup.Group
	for i := range workers {
		g.Go(func() error {
			results[i] = e.Substitute(database, "@@name@@ @@a.k@@ @@b.k@@", fmt.Sprintf("worker-%d", i))
			return nil
		})
	}
	require.NoError(t, g.Wait())

	for i, got := range results {
		assert.Equal(t, want, got, "worker %d", i)
	}
}
