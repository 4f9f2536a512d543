package capacity

// OverCapacityEpsilon is the tolerance, in days, before a negative
// remainder counts as over capacity. Allocation math runs in float64 and
// repeated upserts accumulate noise well under a tenth of a day.
const OverCapacityEpsilon = 0.1

// SprintReconciliation compares one sprint's allocations to its capacity.
type SprintReconciliation struct {
	CapacityDays  float64 `json:"capacity_days"`
	AllocatedDays float64 `json:"allocated_days"`
	RemainingDays float64 `json:"remaining_days"`
	OverCapacity  bool    `json:"over_capacity"`
	Utilization   float64 `json:"utilization"`
}

// ReconcileSprint sums planned days against the sprint's capacity.
func ReconcileSprint(capacityDays float64, plannedDays []float64) SprintReconciliation {
	allocated := 0.0
	for _, d := range plannedDays {
		allocated += d
	}
	remaining := capacityDays - allocated
	return SprintReconciliation{
		CapacityDays:  capacityDays,
		AllocatedDays: allocated,
		RemainingDays: remaining,
		OverCapacity:  IsOverCapacity(remaining),
		Utilization:   Utilization(allocated, capacityDays),
	}
}

// IsOverCapacity applies the epsilon rule to a remaining-days figure.
func IsOverCapacity(remainingDays float64) bool {
	return remainingDays < -OverCapacityEpsilon
}

// ForecastEntry is one allocation's contribution to the quarter forecast.
type ForecastEntry struct {
	PlannedDays float64
	ActualDays  float64
	SprintEnded bool
}

// ForecastedDays mixes actuals for ended sprints with the plan for the
// rest, tracking how far along the quarter's execution is.
func ForecastedDays(entries []ForecastEntry) float64 {
	total := 0.0
	for _, e := range entries {
		if e.SprintEnded {
			total += e.ActualDays
		} else {
			total += e.PlannedDays
		}
	}
	return total
}

// QuarterReconciliation compares both the plan and the mixed forecast
// against quarter capacity, using the same epsilon rule for each.
type QuarterReconciliation struct {
	CapacityDays           float64 `json:"capacity_days"`
	PlannedDays            float64 `json:"planned_days"`
	ForecastedDays         float64 `json:"forecasted_days"`
	PlannedRemainingDays   float64 `json:"planned_remaining_days"`
	ForecastRemainingDays  float64 `json:"forecast_remaining_days"`
	PlannedOverCapacity    bool    `json:"planned_over_capacity"`
	ForecastedOverCapacity bool    `json:"forecasted_over_capacity"`
}

// ReconcileQuarter evaluates planned-vs-capacity and forecast-vs-capacity.
func ReconcileQuarter(capacityDays float64, entries []ForecastEntry) QuarterReconciliation {
	planned := 0.0
	for _, e := range entries {
		planned += e.PlannedDays
	}
	forecast := ForecastedDays(entries)

	return QuarterReconciliation{
		CapacityDays:           capacityDays,
		PlannedDays:            planned,
		ForecastedDays:         forecast,
		PlannedRemainingDays:   capacityDays - planned,
		ForecastRemainingDays:  capacityDays - forecast,
		PlannedOverCapacity:    IsOverCapacity(capacityDays - planned),
		ForecastedOverCapacity: IsOverCapacity(capacityDays - forecast),
	}
}
