package runner_test

import (
	"bytes"
	"context"
	"log/slog"
	"sort"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adalundhe/alphasim/core/design"
	simerr "github.com/adalundhe/alphasim/core/errors"
	"github.com/adalundhe/alphasim/core/results"
	"github.com/adalundhe/alphasim/core/runner"
)

type captureSink struct {
	ests []runner.Estimate
}

func (s *captureSink) Add(e runner.Estimate) {
	s.ests = append(s.ests, e)
}

// sorted returns the captured estimates in canonical (condition,
// replication) order so runs with different scheduling can be compared.
func (s *captureSink) sorted() []runner.Estimate {
	out := make([]runner.Estimate, len(s.ests))
	copy(out, s.ests)
	sort.Slice(out, func(i, j int) bool {
		ci, cj := out[i].Condition, out[j].Condition
		if ci.ItemCount != cj.ItemCount {
			return ci.ItemCount < cj.ItemCount
		}
		if ci.Correlation != cj.Correlation {
			return ci.Correlation < cj.Correlation
		}
		if ci.SampleSize != cj.SampleSize {
			return ci.SampleSize < cj.SampleSize
		}
		return out[i].Replication < out[j].Replication
	})
	return out
}

func testGrid(t *testing.T) *design.Grid {
	t.Helper()
	g, err := design.NewGrid([]int{3, 5}, []float64{0.25}, []int{50, 100})
	require.NoError(t, err)
	return g
}

func TestRunProducesEveryPair(t *testing.T) {
	g := testGrid(t)
	r, err := runner.New(g, runner.Config{Replications: 40, Workers: 2, BaseSeed: 17}, nil)
	require.NoError(t, err)
	require.NotEmpty(t, r.RunID())

	sink := &captureSink{}
	require.NoError(t, r.Run(context.Background(), sink))

	assert.Len(t, sink.ests, g.Len()*40)

	seen := make(map[design.Condition]map[int]bool)
	for _, e := range sink.ests {
		if seen[e.Condition] == nil {
			seen[e.Condition] = make(map[int]bool)
		}
		assert.False(t, seen[e.Condition][e.Replication], "duplicate estimate %s rep %d", e.Condition.Key(), e.Replication)
		seen[e.Condition][e.Replication] = true
	}
	for _, cond := range g.Conditions() {
		assert.Len(t, seen[cond], 40, "condition %s", cond.Key())
	}
}

func TestRunDeterministicAcrossWorkerCounts(t *testing.T) {
	g := testGrid(t)

	run := func(workers int) []runner.Estimate {
		r, err := runner.New(g, runner.Config{Replications: 30, Workers: workers, BaseSeed: 99}, nil)
		require.NoError(t, err)
		sink := &captureSink{}
		require.NoError(t, r.Run(context.Background(), sink))
		return sink.sorted()
	}

	serial := run(1)
	parallel := run(4)

	require.Len(t, parallel, len(serial))
	for i := range serial {
		assert.Equal(t, serial[i].Condition, parallel[i].Condition)
		assert.Equal(t, serial[i].Replication, parallel[i].Replication)
		// Bit-identical, not approximately equal: the random streams are
		// keyed by (condition, replication), not by scheduling.
		assert.Equal(t, serial[i].Alpha, parallel[i].Alpha)
	}
}

func TestRunSeedChangesEstimates(t *testing.T) {
	g := testGrid(t)

	run := func(seed uint64) []runner.Estimate {
		r, err := runner.New(g, runner.Config{Replications: 10, Workers: 2, BaseSeed: seed}, nil)
		require.NoError(t, err)
		sink := &captureSink{}
		require.NoError(t, r.Run(context.Background(), sink))
		return sink.sorted()
	}

	a := run(1)
	b := run(2)
	differs := false
	for i := range a {
		if a[i].Alpha != b[i].Alpha {
			differs = true
			break
		}
	}
	assert.True(t, differs, "different seeds must change the estimates")
}

func TestRunEndToEndSummary(t *testing.T) {
	g, err := design.NewGrid([]int{5}, []float64{0.25}, []int{500})
	require.NoError(t, err)

	runOnce := func() []results.SummaryRow {
		r, err := runner.New(g, runner.Config{Replications: 200, Workers: 4, BaseSeed: 1234}, nil)
		require.NoError(t, err)
		agg := results.NewAggregator(g, results.DefaultThreshold)
		require.NoError(t, r.Run(context.Background(), agg))
		return agg.Summarize()
	}

	rows := runOnce()
	require.Len(t, rows, 1)
	row := rows[0]
	assert.Equal(t, 200, row.Good+row.Bad+row.Failed)
	if row.Defined {
		assert.GreaterOrEqual(t, row.Percentage, 0.0)
		assert.LessOrEqual(t, row.Percentage, 1.0)
	}

	// Repeated runs with the same seed reproduce the summary bit for bit.
	assert.Equal(t, rows, runOnce())
}

func TestRunLogsDeliveredEstimateCount(t *testing.T) {
	g := testGrid(t)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	r, err := runner.New(g, runner.Config{Replications: 10, Workers: 2, BaseSeed: 8}, logger)
	require.NoError(t, err)

	sink := &captureSink{}
	require.NoError(t, r.Run(context.Background(), sink))

	// The closing log line reports what the collector actually merged.
	assert.Contains(t, buf.String(), "estimates="+strconv.Itoa(len(sink.ests)))
	assert.Contains(t, buf.String(), "conditions="+strconv.Itoa(g.Len()))
}

func TestRunCanceledContext(t *testing.T) {
	g := testGrid(t)
	r, err := runner.New(g, runner.Config{Replications: 500, Workers: 2, BaseSeed: 3}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sink := &captureSink{}
	err = r.Run(ctx, sink)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewRunnerValidation(t *testing.T) {
	g := testGrid(t)

	_, err := runner.New(nil, runner.Config{}, nil)
	assert.True(t, simerr.IsInvalidParameter(err))

	_, err = runner.New(g, runner.Config{Replications: -5}, nil)
	assert.True(t, simerr.IsInvalidParameter(err))

	_, err = runner.New(g, runner.Config{CutPoints: []float64{2, 1}}, nil)
	assert.True(t, simerr.IsInvalidParameter(err))

	r, err := runner.New(g, runner.Config{}, nil)
	require.NoError(t, err)
	assert.Equal(t, runner.DefaultReplications, r.Replications())
}
