package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Phase is one stage of a project's delivery lifecycle.
type Phase string

const (
	PhaseTechSpec         Phase = "Tech Spec"
	PhaseExecution        Phase = "Execution"
	PhaseDeveloperTesting Phase = "Developer Testing"
	PhaseUAT              Phase = "UAT"
	PhaseRollout          Phase = "Rollout"
)

// AllPhases lists every valid phase in lifecycle order.
var AllPhases = []Phase{
	PhaseTechSpec,
	PhaseExecution,
	PhaseDeveloperTesting,
	PhaseUAT,
	PhaseRollout,
}

// Valid reports whether p is one of the closed phase set.
func (p Phase) Valid() bool {
	for _, candidate := range AllPhases {
		if p == candidate {
			return true
		}
	}
	return false
}

const phaseDelimiter = ","

// PhaseSet is the set of phases an allocation covers. The column stores a
// comma-delimited string; parsing and validation happen only at this
// boundary so the rest of the code works with typed values.
type PhaseSet []Phase

// ParsePhaseSet parses a delimited phase string, rejecting unknown phases.
func ParsePhaseSet(raw string) (PhaseSet, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return PhaseSet{}, nil
	}
	parts := strings.Split(raw, phaseDelimiter)
	set := make(PhaseSet, 0, len(parts))
	for _, part := range parts {
		p := Phase(strings.TrimSpace(part))
		if p == "" {
			continue
		}
		if !p.Valid() {
			return nil, fmt.Errorf("unknown phase %q", part)
		}
		if !set.Contains(p) {
			set = append(set, p)
		}
	}
	return set, nil
}

// Contains reports whether the set includes p.
func (s PhaseSet) Contains(p Phase) bool {
	for _, existing := range s {
		if existing == p {
			return true
		}
	}
	return false
}

// String serializes the set back to its delimited storage form.
func (s PhaseSet) String() string {
	parts := make([]string, len(s))
	for i, p := range s {
		parts[i] = string(p)
	}
	return strings.Join(parts, phaseDelimiter)
}

// Scan implements sql.Scanner.
func (s *PhaseSet) Scan(src interface{}) error {
	if src == nil {
		*s = PhaseSet{}
		return nil
	}
	var raw string
	switch v := src.(type) {
	case []byte:
		raw = string(v)
	case string:
		raw = v
	default:
		return fmt.Errorf("PhaseSet.Scan: unsupported type %T", src)
	}
	parsed, err := ParsePhaseSet(raw)
	if err != nil {
		return fmt.Errorf("PhaseSet.Scan: %w", err)
	}
	*s = parsed
	return nil
}

// Value implements driver.Valuer.
func (s PhaseSet) Value() (driver.Value, error) {
	return s.String(), nil
}

// MarshalJSON renders the set as a JSON array of phase names.
func (s PhaseSet) MarshalJSON() ([]byte, error) {
	return json.Marshal([]Phase(s))
}

// UnmarshalJSON accepts either a JSON array of phase names or the legacy
// delimited-string form still sent by older UI builds.
func (s *PhaseSet) UnmarshalJSON(data []byte) error {
	var arr []Phase
	if err := json.Unmarshal(data, &arr); err == nil {
		for _, p := range arr {
			if !p.Valid() {
				return fmt.Errorf("unknown phase %q", p)
			}
		}
		*s = PhaseSet(arr)
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("phase set must be an array of phases or a delimited string")
	}
	parsed, err := ParsePhaseSet(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
