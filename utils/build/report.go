package build

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Entry records one written file
type Entry struct {
	Phase    string
	Job      string
	Source   string
	Path     string
	Hash     uint64
	Changed  bool     // False when the file already held identical content
	Warnings []string // Missing variant assets
	Changes  []string // Lines the pass rewrote
}

// Report collects entries from concurrent tasks
type Report struct {
	mu      sync.Mutex
	entries []Entry
	phases  map[string]int // Phase name to first-seen rank
}

// NewReport returns an empty report
func NewReport() *Report {
	return &Report{phases: make(map[string]int)}
}

// Add records an entry. Safe for concurrent use.
func (r *Report) Add(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.phases[e.Phase]; !ok {
		r.phases[e.Phase] = len(r.phases)
	}
	r.entries = append(r.entries, e)
}

// Entries returns a copy of all entries sorted by phase, then job, then path.
// Phases keep the order in which they first reported.
func (r *Report) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Phase != out[j].Phase {
			return r.phases[out[i].Phase] < r.phases[out[j].Phase]
		}
		if out[i].Job != out[j].Job {
			return out[i].Job < out[j].Job
		}
		return out[i].Path < out[j].Path
	})
	return out
}

// JobStats summarizes one job
type JobStats struct {
	Phase     string
	Job       string
	Files     int
	Unchanged int
	Warnings  int
}

// Stats groups entries per job, in Entries order
func (r *Report) Stats() []JobStats {
	var stats []JobStats
	index := map[string]int{}
	for _, e := range r.Entries() {
		key := e.Phase + "\x00" + e.Job
		i, ok := index[key]
		if !ok {
			i = len(stats)
			index[key] = i
			stats = append(stats, JobStats{Phase: e.Phase, Job: e.Job})
		}
		stats[i].Files++
		if !e.Changed {
			stats[i].Unchanged++
		}
		stats[i].Warnings += len(e.Warnings)
	}
	return stats
}

// WarningCount returns the number of warnings over all entries
func (r *Report) WarningCount() int {
	n := 0
	for _, e := range r.Entries() {
		n += len(e.Warnings)
	}
	return n
}

// WriteManifest writes one "<xxhash>  <path>" line per entry, in Entries
// order. Paths below base are written relative to it with forward slashes.
func (r *Report) WriteManifest(w io.Writer, base string) error {
	for _, e := range r.Entries() {
		p := e.Path
		if rel, err := filepath.Rel(base, p); err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			p = rel
		}
		if _, err := fmt.Fprintf(w, "%016x  %s\n", e.Hash, filepath.ToSlash(p)); err != nil {
			return err
		}
	}
	return nil
}
