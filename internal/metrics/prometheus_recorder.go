package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	stageDuration *prom.HistogramVec
	buildDuration prom.Histogram
	stageResults  *prom.CounterVec
	buildOutcome  *prom.CounterVec
	fetchDuration *prom.HistogramVec
	documents     prom.Gauge
	pages         prom.Gauge
	assets        prom.Gauge
	warnings      prom.Gauge
}

// NewPrometheusRecorder constructs and registers Prometheus metrics. Call it
// at most once per registry; a second registration panics in MustRegister.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: "helpbundler",
		Name:      "stage_duration_seconds",
		Help:      "Duration of individual build stages",
		Buckets:   prom.DefBuckets,
	}, []string{"stage"})
	pr.buildDuration = prom.NewHistogram(prom.HistogramOpts{
		Namespace: "helpbundler",
		Name:      "build_duration_seconds",
		Help:      "Total bundle build duration",
		Buckets:   prom.DefBuckets,
	})
	pr.stageResults = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "helpbundler",
		Name:      "stage_results_total",
		Help:      "Stage result counts by outcome",
	}, []string{"stage", "result"})
	pr.buildOutcome = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "helpbundler",
		Name:      "build_outcomes_total",
		Help:      "Build outcomes by final status",
	}, []string{"outcome"})
	pr.fetchDuration = prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: "helpbundler",
		Name:      "fetch_duration_seconds",
		Help:      "Duration of content source fetch operations",
		Buckets:   prom.DefBuckets,
	}, []string{"source", "result"})
	pr.documents = prom.NewGauge(prom.GaugeOpts{
		Namespace: "helpbundler",
		Name:      "build_documents",
		Help:      "Documents compiled in the last build",
	})
	pr.pages = prom.NewGauge(prom.GaugeOpts{
		Namespace: "helpbundler",
		Name:      "build_pages",
		Help:      "Pages written in the last build",
	})
	pr.assets = prom.NewGauge(prom.GaugeOpts{
		Namespace: "helpbundler",
		Name:      "build_assets",
		Help:      "Assets copied in the last build",
	})
	pr.warnings = prom.NewGauge(prom.GaugeOpts{
		Namespace: "helpbundler",
		Name:      "build_warnings",
		Help:      "Warnings reported by the last build",
	})
	reg.MustRegister(pr.stageDuration, pr.buildDuration, pr.stageResults, pr.buildOutcome,
		pr.fetchDuration, pr.documents, pr.pages, pr.assets, pr.warnings)
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil || p.stageDuration == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil || p.buildDuration == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	if p == nil || p.stageResults == nil {
		return
	}
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome string) {
	if p == nil || p.buildOutcome == nil {
		return
	}
	p.buildOutcome.WithLabelValues(outcome).Inc()
}

func (p *PrometheusRecorder) ObserveFetchDuration(source string, d time.Duration, success bool) {
	if p == nil || p.fetchDuration == nil {
		return
	}
	res := "failed"
	if success {
		res = "success"
	}
	p.fetchDuration.WithLabelValues(source, res).Observe(d.Seconds())
}

func (p *PrometheusRecorder) SetBuildCounts(documents, pages, assets, warnings int) {
	if p == nil || p.documents == nil {
		return
	}
	p.documents.Set(float64(documents))
	p.pages.Set(float64(pages))
	p.assets.Set(float64(assets))
	p.warnings.Set(float64(warnings))
}
