// Package profiling accumulates per-phase wall-clock timings across concurrent
// mesh jobs. It is cheap enough to stay enabled; the CLI reports the totals
// after a batch.
package profiling

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

var (
	mu     sync.Mutex
	totals = make(map[string]time.Duration)
	counts = make(map[string]int64)
)

// Track returns a stop function that records the elapsed time under name.
// Usage: defer profiling.Track("meshing.FindFaces")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		totals[name] += d
		counts[name]++
		mu.Unlock()
	}
}

// Reset clears all accumulated timings.
func Reset() {
	mu.Lock()
	clear(totals)
	clear(counts)
	mu.Unlock()
}

// Snapshot returns a copy of the accumulated totals.
func Snapshot() map[string]time.Duration {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]time.Duration, len(totals))
	for k, v := range totals {
		out[k] = v
	}
	return out
}

// Report formats all phases sorted by total time, slowest first.
// Example: "meshing.Greedy2D: 41.3ms (128 calls), meshing.QueryValues: 12.0ms (64 calls)"
func Report() string {
	mu.Lock()
	defer mu.Unlock()

	type phase struct {
		name  string
		total time.Duration
		calls int64
	}
	list := make([]phase, 0, len(totals))
	for k, v := range totals {
		list = append(list, phase{name: k, total: v, calls: counts[k]})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].total > list[j].total })

	parts := make([]string, len(list))
	for i, p := range list {
		parts[i] = fmt.Sprintf("%s: %.1fms (%d calls)",
			p.name, float64(p.total.Microseconds())/1000.0, p.calls)
	}
	return strings.Join(parts, ", ")
}
