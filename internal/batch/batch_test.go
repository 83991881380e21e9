package batch

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"varmatch/internal/match"
	"varmatch/internal/request"
	"varmatch/internal/vocab"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestRunner(workers int) (*Runner, *match.Matcher) {
	m := match.NewMatcher(vocab.Default(), match.DefaultConfig())
	return NewRunner(m, workers, nil), m
}

func TestRunner_PreservesOrder(t *testing.T) {
	runner, m := newTestRunner(4)

	var reqs []request.Request
	for i := 0; i < 50; i++ {
		switch i % 3 {
		case 0:
			reqs = append(reqs, request.Request{
				ExtractedVariables: []string{"target_audience"},
				UserPreferences:    map[string]string{"audience": fmt.Sprint(i)},
			})
		case 1:
			reqs = append(reqs, request.Request{
				ExtractedVariables: []string{"company_name"},
				UserPreferences:    map[string]string{"company_name": "Acme"},
			})
		default:
			reqs = append(reqs, request.Request{
				ExtractedVariables: []string{"xyz123"},
				UserPreferences:    map[string]string{"audience": "x"},
			})
		}
	}

	results, err := runner.Run(context.Background(), reqs)
	require.NoError(t, err)
	require.Len(t, results, len(reqs))

	for i, res := range results {
		want := m.Reconcile(reqs[i].ExtractedVariables, reqs[i].UserPreferences)
		assert.Equal(t, want, res.Matches, "request %d", i)
	}

	assert.Equal(t, "audience", results[0].Matches[0].Suggested)
	assert.Equal(t, 1.0, results[1].Matches[0].Confidence)
	assert.Empty(t, results[2].Matches)
}

func TestRunner_Empty(t *testing.T) {
	runner, _ := newTestRunner(2)

	results, err := runner.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRunner_Cancelled(t *testing.T) {
	runner, _ := newTestRunner(1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reqs := []request.Request{{ExtractedVariables: []string{"tone"}}, {ExtractedVariables: []string{"goal"}}}

	results, err := runner.Run(ctx, reqs)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, results)
}

func TestNewRunner_ClampsWorkers(t *testing.T) {
	runner, _ := newTestRunner(0)
	assert.Equal(t, 1, runner.workers)
	assert.NotNil(t, runner.log)
}
