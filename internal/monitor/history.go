package monitor

import (
	"sync"

	"github.com/enclaveops/epctop/internal/epc"
)

// DefaultHistorySize is the default number of data points to retain per series.
const DefaultHistorySize = 120

// Series names tracked by the dashboard history.
const (
	SeriesAdmit     = "admit"
	SeriesEvict     = "evict"
	SeriesWriteback = "writeback"
	SeriesLoad      = "load"
	SeriesUsage     = "usage"
)

// History manages value history for the dashboard's sparkline graphs using
// named ring buffers. It is safe for concurrent use; samples are applied on
// the Bubble Tea update goroutine while tests may read concurrently.
type History struct {
	mu     sync.RWMutex
	size   int
	series map[string]*ringBuffer
}

// NewHistory creates a new history tracker with the specified buffer size.
func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{
		size:   size,
		series: make(map[string]*ringBuffer),
	}
}

// Push adds a value to the named series.
func (h *History) Push(name string, value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.getOrCreate(name).push(value)
}

// Record applies one refresh cycle to the history. Event rates are pushed
// only when the rate sample is valid; a first observation has no baseline
// and must not pollute the graphs with zeros. EPC usage is derived from the
// stats themselves and is always pushed.
func (h *History) Record(rate epc.RateSample, ok bool, stats epc.GlobalStats) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ok {
		h.getOrCreate(SeriesAdmit).push(rate.AdmitPerSec)
		h.getOrCreate(SeriesEvict).push(rate.EvictPerSec)
		h.getOrCreate(SeriesWriteback).push(rate.WritebackPerSec)
		h.getOrCreate(SeriesLoad).push(rate.LoadPerSec)
	}

	if stats.TotalBytes > 0 {
		usage := float64(stats.UsedBytes) / float64(stats.TotalBytes) * 100
		h.getOrCreate(SeriesUsage).push(usage)
	}
}

// Last returns the last count values of the named series in chronological
// order (oldest first). Returns nil for an unknown series.
func (h *History) Last(name string, count int) []float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()

	buf, ok := h.series[name]
	if !ok {
		return nil
	}
	return buf.getLast(count)
}

// Len returns the number of stored values in the named series.
func (h *History) Len(name string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	buf, ok := h.series[name]
	if !ok {
		return 0
	}
	return buf.count
}

func (h *History) getOrCreate(name string) *ringBuffer {
	buf, ok := h.series[name]
	if !ok {
		buf = newRingBuffer(h.size)
		h.series[name] = buf
	}
	return buf
}

// ringBuffer is a fixed-size circular buffer for float64 values.
type ringBuffer struct {
	data  []float64
	head  int
	count int
	size  int
}

// newRingBuffer creates a new ring buffer with the specified capacity.
func newRingBuffer(size int) *ringBuffer {
	return &ringBuffer{
		data: make([]float64, size),
		size: size,
	}
}

// push adds a value to the ring buffer.
func (r *ringBuffer) push(value float64) {
	r.data[r.head] = value
	r.head = (r.head + 1) % r.size
	if r.count < r.size {
		r.count++
	}
}

// getLast returns the last count values in chronological order (oldest first).
func (r *ringBuffer) getLast(count int) []float64 {
	if count <= 0 || r.count == 0 {
		return nil
	}

	if count > r.count {
		count = r.count
	}

	result := make([]float64, count)

	// head points to the next write position, so the most recent value is
	// at head-1. We want 'count' values ending there.
	start := (r.head - count + r.size) % r.size

	for i := 0; i < count; i++ {
		idx := (start + i) % r.size
		result[i] = r.data[idx]
	}

	return result
}
