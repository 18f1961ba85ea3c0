package source

import (
	"fmt"
	"sync"
	"time"
)

// sectionStart tracks when a named section's first PrintProgress call
// happened, so later calls can report an estimated time remaining instead
// of just a raw count.
var (
	sectionStartMu sync.Mutex
	sectionStart   = map[string]time.Time{}
)

// PrintProgress renders a single-line count/ETA progress report to
// stdout for the fetch command's multi-file mirror operations, adapted
// from the teacher's utils.PrintProgress (pkg/utils/progress.go): same
// single-line carriage-return-driven update, replacing its block bar
// with an estimated-time-remaining figure derived from the section's
// observed throughput so far.
func PrintProgress(section string, current, total int, description string) {
	if total <= 0 {
		total = 1
	}
	if current < 0 {
		current = 0
	}
	if current > total {
		current = total
	}

	sectionStartMu.Lock()
	start, ok := sectionStart[section]
	if !ok {
		start = time.Now()
		sectionStart[section] = start
	}
	if current >= total {
		delete(sectionStart, section)
	}
	sectionStartMu.Unlock()

	percentage := current * 100 / total
	eta := estimateRemaining(start, current, total)

	fmt.Printf("\r%s %d/%d (%d%%) %s%s",
		section,
		current,
		total,
		percentage,
		eta,
		padDescription(description),
	)
	if current == total {
		fmt.Println()
	}
}

func estimateRemaining(start time.Time, current, total int) string {
	if current <= 0 {
		return ""
	}
	elapsed := time.Since(start)
	remaining := total - current
	if remaining <= 0 {
		return fmt.Sprintf(" (done in %s)", elapsed.Round(time.Second))
	}
	perItem := elapsed / time.Duration(current)
	return fmt.Sprintf(" (ETA %s)", (perItem * time.Duration(remaining)).Round(time.Second))
}

func padDescription(description string) string {
	if description == "" {
		return ""
	}
	return " " + description
}
