package capacity

// QuarterInputs are the resolved planning parameters for one (team,
// quarter) pair, after per-quarter settings overrides have been applied.
type QuarterInputs struct {
	WorkingDays           int
	TotalEngineers        float64
	KTLOEngineers         float64
	MeetingTimePercentage float64
	PTODaysPerEngineer    float64
	WorkDaysPerWeek       int
	// ActualPTODays is the sum of recorded PTO entry day counts. When any
	// entries exist they replace the flat per-engineer estimate entirely.
	ActualPTODays float64
	HasPTOEntries bool
}

// QuarterResult carries every derived figure for the quarter capacity view.
type QuarterResult struct {
	WorkingDays         int     `json:"working_days"`
	RoadmapEngineers    float64 `json:"roadmap_engineers"`
	DevFocusFactor      float64 `json:"dev_focus_factor"`
	HypotheticalMaxDays float64 `json:"hypothetical_max_days"`
	PTOAdjustments      float64 `json:"pto_adjustments"`
	AdjustedCapacityDays float64 `json:"adjusted_capacity_days"`
	RoadmapPlanningDays  float64 `json:"roadmap_planning_days"`
	RoadmapPlanningWeeks float64 `json:"roadmap_planning_weeks"`
}

// QuarterCapacity evaluates the quarter capacity formulas. Two distinct
// figures are produced on purpose:
//
//   - AdjustedCapacityDays subtracts aggregate PTO after multiplying by the
//     engineer count: (workingDays*engineers - totalPto) * focus.
//   - RoadmapPlanningDays subtracts the per-engineer estimate before
//     multiplying: (workingDays - ptoPerEngineer) * engineers * focus.
//
// They diverge whenever recorded PTO differs from the flat estimate.
func QuarterCapacity(in QuarterInputs) QuarterResult {
	roadmap := roadmapEngineers(in.TotalEngineers, in.KTLOEngineers)
	focus := 1 - in.MeetingTimePercentage

	basePTO := in.PTODaysPerEngineer * roadmap
	totalPTO := basePTO
	if in.HasPTOEntries {
		totalPTO = in.ActualPTODays
	}

	workingDays := float64(in.WorkingDays)

	planningDays := clampNonNegative((workingDays - in.PTODaysPerEngineer) * roadmap * focus)

	planningWeeks := 0.0
	if in.WorkDaysPerWeek > 0 {
		planningWeeks = planningDays / float64(in.WorkDaysPerWeek)
	}

	return QuarterResult{
		WorkingDays:          in.WorkingDays,
		RoadmapEngineers:     roadmap,
		DevFocusFactor:       focus,
		HypotheticalMaxDays:  workingDays * roadmap,
		PTOAdjustments:       totalPTO,
		AdjustedCapacityDays: clampNonNegative((workingDays*roadmap - totalPTO) * focus),
		RoadmapPlanningDays:  planningDays,
		RoadmapPlanningWeeks: planningWeeks,
	}
}

// ProratedSprintPTO spreads the per-engineer PTO estimate across the
// quarter in proportion to how much of its working time the sprint covers.
func ProratedSprintPTO(ptoDaysPerEngineer float64, quarterWorkingDays, sprintWorkingDays int) float64 {
	if quarterWorkingDays <= 0 {
		return 0
	}
	return ptoDaysPerEngineer / float64(quarterWorkingDays) * float64(sprintWorkingDays)
}

// SprintAllocationDays is the per-sprint capacity formula, also used to
// auto-suggest planned days for an allocation given a chosen engineer
// count: engineers x (sprintWorkingDays - proratedPTO) x focus.
func SprintAllocationDays(numEngineers float64, sprintWorkingDays, quarterWorkingDays int, ptoDaysPerEngineer, meetingTimePercentage float64) float64 {
	focus := 1 - meetingTimePercentage
	pto := ProratedSprintPTO(ptoDaysPerEngineer, quarterWorkingDays, sprintWorkingDays)
	adjusted := clampNonNegative(float64(sprintWorkingDays) - pto)
	return numEngineers * adjusted * focus
}

// Utilization is allocated effort as a percentage of capacity.
func Utilization(allocatedDays, capacityDays float64) float64 {
	if capacityDays == 0 {
		return 0
	}
	return allocatedDays / capacityDays * 100
}

func roadmapEngineers(total, ktlo float64) float64 {
	return clampNonNegative(total - ktlo)
}

func clampNonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
