package engine

import (
	"fmt"
	"sort"

	"github.com/jdziat/recurring-tasks/pkg/core"
)

// FindDuplicates scans tasks for redundant recurring instances sharing
// the same marker. For each group of two or more, exactly one survivor
// is kept (earliest CreatedAt, ties broken by id) and the ids of the
// rest are returned for deletion. Tasks without a marker are ignored.
//
// The result order is deterministic: groups appear in first-seen task
// order, duplicates within a group sorted by CreatedAt then id.
func FindDuplicates(tasks []core.Task) []string {
	byMarker := make(map[string][]core.Task)
	order := make([]string, 0)

	for _, t := range tasks {
		m := t.Marker()
		if m == "" {
			continue
		}
		if _, seen := byMarker[m]; !seen {
			order = append(order, m)
		}
		byMarker[m] = append(byMarker[m], t)
	}

	duplicates := make([]string, 0)
	for _, m := range order {
		group := byMarker[m]
		if len(group) < 2 {
			continue
		}
		sort.Slice(group, func(i, j int) bool {
			if !group[i].CreatedAt.Equal(group[j].CreatedAt) {
				return group[i].CreatedAt.Before(group[j].CreatedAt)
			}
			return group[i].ID < group[j].ID
		})
		for _, t := range group[1:] {
			duplicates = append(duplicates, t.ID)
		}
	}

	return duplicates
}

// Report summarizes one janitor sweep.
type Report struct {
	// Scanned is the number of tasks examined.
	Scanned int
	// Duplicates holds the ids selected for deletion.
	Duplicates []string
	// Deleted and Failed count the per-id delete outcomes; one failure
	// never blocks the other deletions.
	Deleted int
	Failed  int
}

// HasDuplicates reports whether the sweep found anything to clean up.
func (r Report) HasDuplicates() bool {
	return len(r.Duplicates) > 0
}

// Message returns a human-readable one-line summary.
func (r Report) Message() string {
	if !r.HasDuplicates() {
		return fmt.Sprintf("scanned %d tasks, no duplicates", r.Scanned)
	}
	return fmt.Sprintf("scanned %d tasks, found %d duplicates, deleted %d, failed %d",
		r.Scanned, len(r.Duplicates), r.Deleted, r.Failed)
}
