package slo

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

const (
	requestsMetric = "http_requests_total"
	durationMetric = "http_request_duration_seconds"
)

// Evaluator periodically recomputes the SLO gauges from the request metrics
// already collected in the Prometheus registry. It runs inside the API
// process so the gauges are available on the same /metrics endpoint.
type Evaluator struct {
	Gatherer prometheus.Gatherer
	Interval time.Duration
}

// NewEvaluator returns an evaluator over the default registry with a
// one-minute refresh interval.
func NewEvaluator() *Evaluator {
	return &Evaluator{
		Gatherer: prometheus.DefaultGatherer,
		Interval: time.Minute,
	}
}

// Run evaluates on every tick until the context is cancelled.
func (e *Evaluator) Run(ctx context.Context) {
	ticker := time.NewTicker(e.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.Evaluate()
		}
	}
}

// Evaluate recomputes all SLO gauges from the current metric state.
func (e *Evaluator) Evaluate() {
	families, err := e.Gatherer.Gather()
	if err != nil {
		slog.Warn("slo evaluation failed", slog.Any("error", err))
		return
	}

	var (
		total, errors float64
		buckets       map[float64]uint64
		sampleCount   uint64
	)
	for _, family := range families {
		switch family.GetName() {
		case requestsMetric:
			for _, m := range family.GetMetric() {
				v := m.GetCounter().GetValue()
				total += v
				if is5xx(m) {
					errors += v
				}
			}
		case durationMetric:
			buckets = make(map[float64]uint64)
			for _, m := range family.GetMetric() {
				h := m.GetHistogram()
				sampleCount += h.GetSampleCount()
				for _, b := range h.GetBucket() {
					buckets[b.GetUpperBound()] += b.GetCumulativeCount()
				}
			}
		}
	}

	if total > 0 {
		UpdateAvailability((total - errors) / total)
		UpdateErrorRate(errors / total)
	}
	if sampleCount > 0 {
		UpdateLatencyP95(quantileFromBuckets(buckets, sampleCount, 0.95))
		UpdateLatencyP99(quantileFromBuckets(buckets, sampleCount, 0.99))
	}
}

func is5xx(m *dto.Metric) bool {
	for _, label := range m.GetLabel() {
		if label.GetName() != "status" {
			continue
		}
		code, err := strconv.Atoi(label.GetValue())
		return err == nil && code >= 500
	}
	return false
}

// quantileFromBuckets estimates a quantile by linear interpolation within the
// cumulative histogram bucket that contains the target rank, the same scheme
// Prometheus's histogram_quantile uses.
func quantileFromBuckets(buckets map[float64]uint64, count uint64, q float64) float64 {
	if len(buckets) == 0 || count == 0 {
		return 0
	}

	bounds := make([]float64, 0, len(buckets))
	for bound := range buckets {
		bounds = append(bounds, bound)
	}
	sort.Float64s(bounds)

	rank := q * float64(count)
	var prevBound float64
	var prevCount uint64
	for _, bound := range bounds {
		c := buckets[bound]
		if float64(c) >= rank {
			if math.IsInf(bound, +1) {
				return prevBound
			}
			span := float64(c - prevCount)
			if span == 0 {
				return bound
			}
			return prevBound + (bound-prevBound)*(rank-float64(prevCount))/span
		}
		prevBound, prevCount = bound, c
	}
	return prevBound
}
