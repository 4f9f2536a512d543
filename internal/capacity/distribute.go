package capacity

import (
	"sort"
	"time"
)

// StatusTransition is one entry of an issue's workflow history: the state
// the issue moved into and when.
type StatusTransition struct {
	State string
	At    time.Time
}

// ActivePeriod is a contiguous span an issue spent in the active state.
type ActivePeriod struct {
	Start time.Time
	End   time.Time
}

// Covers reports whether the period spans the instant t. Business days are
// compared at midnight, so work started later the same day does not count
// toward that day.
func (p ActivePeriod) Covers(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

// IssueTimeline is one issue's working history used by the distributor.
type IssueTimeline struct {
	IssueID    string
	Identifier string
	ProjectID  string
	AssigneeID string
	Periods    []ActivePeriod
}

// ActivePeriods derives the spans an issue spent in activeState from its
// transition history. Transitions are sorted chronologically first;
// entering activeState opens a period, moving to any other state closes
// it, and a period still open is closed at now.
func ActivePeriods(transitions []StatusTransition, activeState string, now time.Time) []ActivePeriod {
	sorted := make([]StatusTransition, len(transitions))
	copy(sorted, transitions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].At.Before(sorted[j].At)
	})

	var periods []ActivePeriod
	var openStart *time.Time
	for _, tr := range sorted {
		entering := tr.State == activeState
		switch {
		case entering && openStart == nil:
			start := tr.At
			openStart = &start
		case !entering && openStart != nil:
			periods = append(periods, ActivePeriod{Start: *openStart, End: tr.At})
			openStart = nil
		}
	}
	if openStart != nil {
		periods = append(periods, ActivePeriod{Start: *openStart, End: now})
	}
	return periods
}

// DistributeDays splits each assignee's daily 1.0-day budget evenly across
// the issues they had concurrently active on each business day, then
// normalizes the per-issue totals by the focus factor. Issues without an
// assignee contribute nothing. The per-day split always sums to exactly
// one day across an assignee's active issues.
func DistributeDays(timelines []IssueTimeline, businessDays []time.Time, focusFactor float64) map[string]float64 {
	byAssignee := make(map[string][]IssueTimeline)
	for _, tl := range timelines {
		if tl.AssigneeID == "" {
			continue
		}
		byAssignee[tl.AssigneeID] = append(byAssignee[tl.AssigneeID], tl)
	}

	rawDays := make(map[string]float64)
	for _, issues := range byAssignee {
		for _, day := range businessDays {
			var active []IssueTimeline
			for _, issue := range issues {
				for _, period := range issue.Periods {
					if period.Covers(day) {
						active = append(active, issue)
						break
					}
				}
			}
			if len(active) == 0 {
				continue
			}
			share := 1.0 / float64(len(active))
			for _, issue := range active {
				rawDays[issue.IssueID] += share
			}
		}
	}

	normalized := make(map[string]float64, len(rawDays))
	for issueID, days := range rawDays {
		normalized[issueID] = days * focusFactor
	}
	return normalized
}

// SumByProject aggregates per-issue actual days up to their Linear project.
// Issues without a project are dropped.
func SumByProject(actualDays map[string]float64, timelines []IssueTimeline) map[string]float64 {
	projectByIssue := make(map[string]string, len(timelines))
	for _, tl := range timelines {
		projectByIssue[tl.IssueID] = tl.ProjectID
	}

	totals := make(map[string]float64)
	for issueID, days := range actualDays {
		projectID := projectByIssue[issueID]
		if projectID == "" || days == 0 {
			continue
		}
		totals[projectID] += days
	}
	return totals
}
