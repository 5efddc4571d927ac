package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	PagesFetched       int64
	ArticlesExtracted  int64
	ArticlesInserted   int64
	ArticlesUpdated    int64
	DuplicatesFiltered int64
	ExtractionErrors   int64

	// Timings
	LastRunDuration    time.Duration
	AverageRunDuration time.Duration
	TotalRunDuration   time.Duration
	RunCount           int64

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) AddPagesFetched(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PagesFetched += int64(n)
}

func (m *Metrics) AddArticlesExtracted(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesExtracted += int64(n)
}

func (m *Metrics) AddArticlesInserted(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesInserted += int64(n)
}

func (m *Metrics) AddArticlesUpdated(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesUpdated += int64(n)
}

func (m *Metrics) AddDuplicatesFiltered(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesFiltered += int64(n)
}

func (m *Metrics) AddExtractionErrors(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ExtractionErrors += int64(n)
}

func (m *Metrics) RecordRunDuration(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastRunDuration = duration
	m.TotalRunDuration += duration
	m.RunCount++

	if m.RunCount > 0 {
		m.AverageRunDuration = m.TotalRunDuration / time.Duration(m.RunCount)
	}
}

func (m *Metrics) SetLastRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"pages_fetched":           m.PagesFetched,
		"articles_extracted":      m.ArticlesExtracted,
		"articles_inserted":       m.ArticlesInserted,
		"articles_updated":        m.ArticlesUpdated,
		"duplicates_filtered":     m.DuplicatesFiltered,
		"extraction_errors":       m.ExtractionErrors,
		"last_run_duration_ms":    m.LastRunDuration.Milliseconds(),
		"average_run_duration_ms": m.AverageRunDuration.Milliseconds(),
		"last_run_time":           m.LastRunTime.Format(time.RFC3339),
		"last_error_time":         m.LastErrorTime.Format(time.RFC3339),
		"last_error":              m.LastError,
		"is_healthy":              m.IsHealthy,
	}
}
