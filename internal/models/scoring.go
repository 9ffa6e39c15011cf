package models

import (
	"fmt"
	"time"
)

// SlotPreference is the requested time-of-day window.
type SlotPreference string

const (
	SlotMorning   SlotPreference = "morning"
	SlotAfternoon SlotPreference = "afternoon"
	SlotBoth      SlotPreference = "both"
)

// ParseSlotPreference validates a raw slot value, defaulting to SlotBoth.
func ParseSlotPreference(raw string) (SlotPreference, error) {
	switch SlotPreference(raw) {
	case SlotMorning, SlotAfternoon, SlotBoth:
		return SlotPreference(raw), nil
	case "":
		return SlotBoth, nil
	}
	return "", fmt.Errorf("unknown slot preference %q", raw)
}

// ConstraintMode controls whether a criterion penalises or excludes.
// Hard constraints remove violating combinations from the candidate set;
// soft constraints only lower the score.
type ConstraintMode string

const (
	ConstraintSoft ConstraintMode = "soft"
	ConstraintHard ConstraintMode = "hard"
)

// ParseConstraintMode validates a raw mode value, defaulting to soft.
func ParseConstraintMode(raw string) (ConstraintMode, error) {
	switch ConstraintMode(raw) {
	case ConstraintSoft, ConstraintHard:
		return ConstraintMode(raw), nil
	case "":
		return ConstraintSoft, nil
	}
	return "", fmt.Errorf("unknown constraint mode %q", raw)
}

// ScoringPolicy selects the ranking formula.
type ScoringPolicy string

const (
	// PolicyWeightedMean scores by the weighted arithmetic mean of the
	// normalized metrics. Canonical default.
	PolicyWeightedMean ScoringPolicy = "weighted_mean"
	// PolicyDistanceToIdeal scores by similarity to the all-ones normalized
	// metric vector under a weighted Euclidean distance.
	PolicyDistanceToIdeal ScoringPolicy = "distance_to_ideal"
)

// ParseScoringPolicy validates a raw policy value, defaulting to weighted mean.
func ParseScoringPolicy(raw string) (ScoringPolicy, error) {
	switch ScoringPolicy(raw) {
	case PolicyWeightedMean, PolicyDistanceToIdeal:
		return ScoringPolicy(raw), nil
	case "":
		return PolicyWeightedMean, nil
	}
	return "", fmt.Errorf("unknown scoring policy %q", raw)
}

// Weights holds the per-criterion importance knobs. All values are
// nonnegative; the scale is free since scores are weight-sum normalized.
type Weights struct {
	Rank     float64 `json:"rank"`
	Window   float64 `json:"window"`
	FreeDays float64 `json:"freeDays"`
	Veto     float64 `json:"veto"`
	Slot     float64 `json:"slot"`
}

// Total returns the weight sum used for mean normalization.
func (w Weights) Total() float64 {
	return w.Rank + w.Window + w.FreeDays + w.Veto + w.Slot
}

// CombinationMetrics are the raw per-combination criterion values.
type CombinationMetrics struct {
	AvgRank        float64 `json:"avgRank"`
	WindowMinutes  int     `json:"windowMinutes"`
	FreeDays       int     `json:"freeDays"`
	VetoCount      int     `json:"vetoCount"`
	SlotViolations int     `json:"slotViolations"`
}

// ScoredCombination pairs a candidate schedule with its metrics and final score.
type ScoredCombination struct {
	Score    float64            `json:"score"`
	Sections Combination        `json:"sections"`
	Metrics  CombinationMetrics `json:"metrics"`
}

// RunStats summarises one enumeration and scoring pass.
type RunStats struct {
	Enumerated int   `json:"enumerated"`
	Valid      int   `json:"valid"`
	Truncated  bool  `json:"truncated"`
	DurationMS int64 `json:"durationMs"`
	CacheHit   bool  `json:"cacheHit"`
}

// ScheduleRun is a scored result set retained in memory for follow-up reads.
type ScheduleRun struct {
	ID           string              `json:"id"`
	CatalogID    string              `json:"catalogId"`
	Policy       ScoringPolicy       `json:"policy"`
	Combinations []ScoredCombination `json:"combinations"`
	Stats        RunStats            `json:"stats"`
	CreatedAt    time.Time           `json:"createdAt"`
}
