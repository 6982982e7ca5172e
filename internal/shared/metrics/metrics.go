package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	auditsSubmittedTotal     atomic.Uint64
	auditsPersistFailedTotal atomic.Uint64
	leadsSubmittedTotal      atomic.Uint64
	leadsPersistFailedTotal  atomic.Uint64
	eventsPublishedTotal     atomic.Uint64
	eventsEnqueueFailedTotal atomic.Uint64

	workerJobsReceived             atomic.Uint64
	workerJobsCompleted            atomic.Uint64
	workerJobsFailed               atomic.Uint64
	workerJobsDeletedUnrecoverable atomic.Uint64

	sinkDeliveries = newLabeledCounter()
	sinkFailures   = newLabeledCounter()

	auditScore   = newHistogram([]float64{60, 65, 70, 75, 80, 85, 90, 95, 98})
	sinkDuration = newHistogram([]float64{50, 100, 250, 500, 1000, 2500, 5000, 10000})
)

func IncAuditsSubmitted()     { auditsSubmittedTotal.Add(1) }
func IncAuditsPersistFailed() { auditsPersistFailedTotal.Add(1) }
func IncLeadsSubmitted()      { leadsSubmittedTotal.Add(1) }
func IncLeadsPersistFailed()  { leadsPersistFailedTotal.Add(1) }
func IncEventsPublished()     { eventsPublishedTotal.Add(1) }
func IncEventsEnqueueFailed() { eventsEnqueueFailedTotal.Add(1) }

func IncWorkerJobsReceived()             { workerJobsReceived.Add(1) }
func IncWorkerJobsCompleted()            { workerJobsCompleted.Add(1) }
func IncWorkerJobsFailed()               { workerJobsFailed.Add(1) }
func IncWorkerJobsDeletedUnrecoverable() { workerJobsDeletedUnrecoverable.Add(1) }

// ObserveAuditScore records the overall score of an evaluated audit.
func ObserveAuditScore(score int) {
	auditScore.Observe(float64(score))
}

// ObserveSinkDelivery records one delivery attempt to the named sink.
func ObserveSinkDelivery(sink string, durationMs float64, err error) {
	if durationMs < 0 {
		durationMs = 0
	}
	sinkDuration.Observe(durationMs)
	sinkDeliveries.Inc(sink)
	if err != nil {
		sinkFailures.Inc(sink)
	}
}

// SinkFailures returns the failure count recorded for sink.
func SinkFailures(sink string) uint64 {
	return sinkFailures.Get(sink)
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
	writeCounter(&buf, "audits_submitted_total", "Total audits evaluated", auditsSubmittedTotal.Load())
	writeCounter(&buf, "audits_persist_failed_total", "Audits that could not be stored", auditsPersistFailedTotal.Load())
	writeCounter(&buf, "leads_submitted_total", "Total contact leads accepted", leadsSubmittedTotal.Load())
	writeCounter(&buf, "leads_persist_failed_total", "Leads that could not be stored", leadsPersistFailedTotal.Load())
	writeCounter(&buf, "notify_events_published_total", "Notification events handed off for delivery", eventsPublishedTotal.Load())
	writeCounter(&buf, "notify_events_enqueue_failed_total", "Notification events the queue rejected", eventsEnqueueFailedTotal.Load())
	writeLabeledCounter(&buf, "notify_sink_deliveries_total", "Sink delivery attempts", "sink", sinkDeliveries.Snapshot())
	writeLabeledCounter(&buf, "notify_sink_failures_total", "Sink delivery failures", "sink", sinkFailures.Snapshot())
	writeCounter(&buf, "worker_jobs_received_total", "Queue messages received", workerJobsReceived.Load())
	writeCounter(&buf, "worker_jobs_completed_total", "Queue messages delivered and deleted", workerJobsCompleted.Load())
	writeCounter(&buf, "worker_jobs_failed_total", "Queue messages left for redelivery", workerJobsFailed.Load())
	writeCounter(&buf, "worker_jobs_deleted_unrecoverable_total", "Undecodable queue messages deleted", workerJobsDeletedUnrecoverable.Load())
	writeHistogram(&buf, "audit_score", "Overall audit score", auditScore.Snapshot())
	writeHistogram(&buf, "notify_sink_duration_ms", "Sink delivery duration in milliseconds", sinkDuration.Snapshot())
	return buf.String()
}

type labeledCounter struct {
	mu     sync.Mutex
	values map[string]uint64
}

func newLabeledCounter() *labeledCounter {
	return &labeledCounter{values: make(map[string]uint64)}
}

func (l *labeledCounter) Inc(label string) {
	l.mu.Lock()
	l.values[label]++
	l.mu.Unlock()
}

func (l *labeledCounter) Get(label string) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.values[label]
}

func (l *labeledCounter) Snapshot() map[string]uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[string]uint64, len(l.values))
	for k, v := range l.values {
		out[k] = v
	}
	return out
}

// histogram stores per-bucket counts; Render makes them cumulative.
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
			return
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeLabeledCounter(buf *bytes.Buffer, name, help, label string, values map[string]uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(buf, "%s{%s=%q} %d\n", name, label, k, values[k])
	}
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
