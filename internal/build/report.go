package build

import (
	"sync"
	"time"

	"git.home.luguber.info/inful/helpbundler/internal/history"
)

// Report summarizes one build for callers, the CLI, and the history store.
type Report struct {
	BuildID    string
	BundleName string
	StartedAt  time.Time
	Duration   time.Duration
	Status     string // success|warning|failed|canceled
	SourceHead string
	Documents  int
	Pages      int
	Assets     int

	mu       sync.Mutex
	Warnings []string
}

// AddWarning appends a warning. Safe for concurrent use during composition.
func (r *Report) AddWarning(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Warnings = append(r.Warnings, message)
}

// HistoryEntry converts the report to its persisted form.
func (r *Report) HistoryEntry() history.Entry {
	details := map[string]string{}
	if r.SourceHead != "" {
		details["source_head"] = r.SourceHead
	}
	if len(details) == 0 {
		details = nil
	}
	return history.Entry{
		BuildID:    r.BuildID,
		BundleName: r.BundleName,
		StartedAt:  r.StartedAt,
		DurationMS: r.Duration.Milliseconds(),
		Status:     r.Status,
		Documents:  r.Documents,
		Pages:      r.Pages,
		Assets:     r.Assets,
		Warnings:   r.Warnings,
		Details:    details,
	}
}
