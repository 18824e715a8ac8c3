package metrics

import (
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestNoopRecorder_SafeOnAllMethods(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveStageDuration("scan", time.Second)
	r.ObserveBuildDuration(time.Second)
	r.IncStageResult("scan", ResultSuccess)
	r.IncBuildOutcome("success")
	r.ObserveFetchDuration("git", time.Second, true)
	r.SetBuildCounts(1, 2, 3, 4)
}

func TestPrometheusRecorder_NilReceiverSafe(t *testing.T) {
	var p *PrometheusRecorder
	p.ObserveStageDuration("scan", time.Second)
	p.ObserveBuildDuration(time.Second)
	p.IncStageResult("scan", ResultFatal)
	p.IncBuildOutcome("failed")
	p.ObserveFetchDuration("git", time.Second, false)
	p.SetBuildCounts(0, 0, 0, 0)
}

func TestPrometheusRecorder_OnePerRegistry(t *testing.T) {
	reg := prom.NewRegistry()
	NewPrometheusRecorder(reg)

	// Registering a second recorder on the same registry must fail loudly
	// rather than silently double-count; separate registries are independent.
	require.Panics(t, func() { NewPrometheusRecorder(reg) })
	require.NotPanics(t, func() { NewPrometheusRecorder(prom.NewRegistry()) })
}

func TestPrometheusRecorder_CountsStageResults(t *testing.T) {
	reg := prom.NewRegistry()
	p := NewPrometheusRecorder(reg)

	p.IncStageResult("scan", ResultSuccess)
	p.IncStageResult("scan", ResultSuccess)
	p.IncStageResult("compose", ResultWarning)

	expected := `
		# HELP helpbundler_stage_results_total Stage result counts by outcome
		# TYPE helpbundler_stage_results_total counter
		helpbundler_stage_results_total{result="success",stage="scan"} 2
		helpbundler_stage_results_total{result="warning",stage="compose"} 1
	`
	require.NoError(t, testutil.CollectAndCompare(p.stageResults, strings.NewReader(expected)))
}

func TestPrometheusRecorder_SetBuildCounts(t *testing.T) {
	reg := prom.NewRegistry()
	p := NewPrometheusRecorder(reg)

	p.SetBuildCounts(12, 15, 3, 2)
	require.Equal(t, 12.0, testutil.ToFloat64(p.documents))
	require.Equal(t, 15.0, testutil.ToFloat64(p.pages))
	require.Equal(t, 3.0, testutil.ToFloat64(p.assets))
	require.Equal(t, 2.0, testutil.ToFloat64(p.warnings))
}
