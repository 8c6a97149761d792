package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	matchComputedTotal      atomic.Uint64
	matchAnnotationFailures atomic.Uint64
	geocodeFallbackTotal    atomic.Uint64
	statusChangeTotal       atomic.Uint64
	bulkOpsTotal            atomic.Uint64
	bulkItemFailedTotal     atomic.Uint64

	rankDuration = newHistogram([]float64{5, 10, 25, 50, 100, 250, 500, 1000, 5000})
)

// IncMatchComputed increments the computed-match counter.
func IncMatchComputed() {
	matchComputedTotal.Add(1)
}

// IncMatchAnnotationFailed increments the failed best-effort annotation counter.
func IncMatchAnnotationFailed() {
	matchAnnotationFailures.Add(1)
}

// IncGeocodeFallback counts scoring calls that fell back to the neutral location subscore.
func IncGeocodeFallback() {
	geocodeFallbackTotal.Add(1)
}

// IncStatusChange increments the status-change counter.
func IncStatusChange() {
	statusChangeTotal.Add(1)
}

// IncBulkOp increments the bulk-operation counter.
func IncBulkOp() {
	bulkOpsTotal.Add(1)
}

// AddBulkItemFailures adds to the failed-bulk-item counter.
func AddBulkItemFailures(n int) {
	if n > 0 {
		bulkItemFailedTotal.Add(uint64(n))
	}
}

// ObserveRankDurationMs records a batch ranking duration in milliseconds.
func ObserveRankDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	rankDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "match_computed_total", "Total match scores computed", matchComputedTotal.Load())
	writeCounter(&buf, "match_annotation_failed_total", "Total failed best-effort match annotations", matchAnnotationFailures.Load())
	writeCounter(&buf, "geocode_fallback_total", "Total scoring calls using the neutral location fallback", geocodeFallbackTotal.Load())
	writeCounter(&buf, "status_change_total", "Total application status changes", statusChangeTotal.Load())
	writeCounter(&buf, "bulk_ops_total", "Total bulk status operations", bulkOpsTotal.Load())
	writeCounter(&buf, "bulk_item_failed_total", "Total failed items across bulk operations", bulkItemFailedTotal.Load())
	writeHistogram(&buf, "rank_duration_ms", "Batch ranking duration in milliseconds", rankDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
	return out
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
