package dto

import "github.com/horarium/timetable-api/internal/models"

// WeightsRequest holds the per-criterion importance knobs on the familiar
// one-to-five scale. Zero disables a criterion.
type WeightsRequest struct {
	Rank     float64 `json:"rank" validate:"gte=0,lte=5"`
	Window   float64 `json:"window" validate:"gte=0,lte=5"`
	FreeDays float64 `json:"freeDays" validate:"gte=0,lte=5"`
	Veto     float64 `json:"veto" validate:"gte=0,lte=5"`
	Slot     float64 `json:"slot" validate:"gte=0,lte=5"`
}

// ToModel converts request weights to the engine representation.
func (w WeightsRequest) ToModel() models.Weights {
	return models.Weights{
		Rank:     w.Rank,
		Window:   w.Window,
		FreeDays: w.FreeDays,
		Veto:     w.Veto,
		Slot:     w.Slot,
	}
}

// GenerateScheduleRequest is the full parameter set for one scoring run.
// Ranking lists teachers best-first; teachers not listed share the worst
// rank. Banned teachers are penalised or excluded depending on vetoMode.
type GenerateScheduleRequest struct {
	CatalogID   string         `json:"catalogId" validate:"required"`
	Courses     []string       `json:"courses" validate:"required,min=1,dive,required"`
	Ranking     []string       `json:"ranking" validate:"omitempty,dive,required"`
	Banned      []string       `json:"banned" validate:"omitempty,dive,required"`
	Slot        string         `json:"slot" validate:"omitempty,oneof=morning afternoon both"`
	SlotMode    string         `json:"slotMode" validate:"omitempty,oneof=soft hard"`
	VetoMode    string         `json:"vetoMode" validate:"omitempty,oneof=soft hard"`
	MinFreeDays int            `json:"minFreeDays" validate:"gte=0,lte=5"`
	Weights     WeightsRequest `json:"weights"`
	Policy      string         `json:"policy" validate:"omitempty,oneof=weighted_mean distance_to_ideal"`
	Limit       int            `json:"limit" validate:"gte=0,lte=500"`
}

// GenerateScheduleResponse returns the ranked combinations of one run.
type GenerateScheduleResponse struct {
	RunID        string                     `json:"runId"`
	Combinations []models.ScoredCombination `json:"combinations"`
	Stats        models.RunStats            `json:"stats"`
	Total        int                        `json:"total"`
}

// RunResponse is the follow-up read of a retained run, paginated over the
// full ranked result set.
type RunResponse struct {
	RunID        string                     `json:"runId"`
	CatalogID    string                     `json:"catalogId"`
	Policy       models.ScoringPolicy       `json:"policy"`
	Combinations []models.ScoredCombination `json:"combinations"`
	Stats        models.RunStats            `json:"stats"`
}

// BlocksResponse lists the flattened meeting blocks of one combination,
// ordered by day then start time, for timetable rendering.
type BlocksResponse struct {
	RunID  string                `json:"runId"`
	Index  int                   `json:"index"`
	Score  float64               `json:"score"`
	Blocks []models.MeetingBlock `json:"blocks"`
}
