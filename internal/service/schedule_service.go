package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/horarium/timetable-api/internal/dto"
	"github.com/horarium/timetable-api/internal/models"
	"github.com/horarium/timetable-api/internal/scheduler"
	"github.com/horarium/timetable-api/pkg/config"
	apperrors "github.com/horarium/timetable-api/pkg/errors"
)

// ScheduleService runs the combination engine against ingested catalogs and
// retains the scored runs for follow-up reads and exports.
type ScheduleService interface {
	Generate(ctx context.Context, req dto.GenerateScheduleRequest) (*dto.GenerateScheduleResponse, error)
	GetRun(id string) (*models.ScheduleRun, error)
	CombinationBlocks(runID string, index int) (*dto.BlocksResponse, error)
}

type runEntry struct {
	run       *models.ScheduleRun
	expiresAt time.Time
}

type scheduleService struct {
	catalogs CatalogService
	cache    CacheService
	metrics  MetricsService
	validate *validator.Validate
	cfg      config.EngineConfig
	logger   *zap.Logger

	mu   sync.RWMutex
	runs map[string]runEntry
}

// NewScheduleService wires the engine facade.
func NewScheduleService(catalogs CatalogService, cache CacheService, metrics MetricsService, validate *validator.Validate, cfg config.EngineConfig, logger *zap.Logger) ScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	return &scheduleService{
		catalogs: catalogs,
		cache:    cache,
		metrics:  metrics,
		validate: validate,
		cfg:      cfg,
		logger:   logger,
		runs:     make(map[string]runEntry),
	}
}

func (s *scheduleService) Generate(ctx context.Context, req dto.GenerateScheduleRequest) (*dto.GenerateScheduleResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrValidation.Code, apperrors.ErrValidation.Status, "invalid generate payload")
	}

	catalog, _, err := s.catalogs.Get(req.CatalogID)
	if err != nil {
		return nil, err
	}

	params, err := s.buildParams(catalog, req)
	if err != nil {
		return nil, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = s.cfg.DefaultLimit
	}

	key := runCacheKey(req)
	var run models.ScheduleRun
	if s.cache.Get(ctx, key, &run) {
		run.Stats.CacheHit = true
		s.storeRun(&run)
		return s.response(&run, limit), nil
	}

	started := time.Now()
	result := scheduler.Run(params)
	elapsed := time.Since(started)

	s.metrics.ObserveRun(elapsed, result.Enumerated, len(result.Combinations), result.Truncated)

	run = models.ScheduleRun{
		ID:           uuid.NewString(),
		CatalogID:    req.CatalogID,
		Policy:       params.Policy,
		Combinations: result.Combinations,
		Stats: models.RunStats{
			Enumerated: result.Enumerated,
			Valid:      len(result.Combinations),
			Truncated:  result.Truncated,
			DurationMS: elapsed.Milliseconds(),
		},
		CreatedAt: started.UTC(),
	}
	s.storeRun(&run)
	s.cache.Set(ctx, key, &run)

	s.logger.Info("schedule run completed",
		zap.String("run_id", run.ID),
		zap.String("catalog_id", run.CatalogID),
		zap.Int("enumerated", run.Stats.Enumerated),
		zap.Int("valid", run.Stats.Valid),
		zap.Bool("truncated", run.Stats.Truncated),
		zap.Duration("elapsed", elapsed),
	)
	return s.response(&run, limit), nil
}

func (s *scheduleService) GetRun(id string) (*models.ScheduleRun, error) {
	s.mu.RLock()
	entry, ok := s.runs[id]
	s.mu.RUnlock()

	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.runs, id)
		s.mu.Unlock()
		return nil, apperrors.ErrRunExpired
	}
	return entry.run, nil
}

func (s *scheduleService) CombinationBlocks(runID string, index int) (*dto.BlocksResponse, error) {
	run, err := s.GetRun(runID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(run.Combinations) {
		return nil, apperrors.Clone(apperrors.ErrNotFound,
			fmt.Sprintf("combination index %d out of range (run has %d)", index, len(run.Combinations)))
	}

	combo := run.Combinations[index]
	blocks := make([]models.MeetingBlock, 0)
	for _, section := range combo.Sections {
		for _, meeting := range section.Meetings {
			blocks = append(blocks, models.MeetingBlock{
				Day:       meeting.Day,
				Start:     meeting.Start,
				End:       meeting.End,
				Course:    section.Course,
				SectionID: section.ID,
				Teacher:   section.Teacher,
			})
		}
	}
	sort.SliceStable(blocks, func(i, j int) bool {
		if blocks[i].Day != blocks[j].Day {
			return blocks[i].Day < blocks[j].Day
		}
		return blocks[i].Start < blocks[j].Start
	})

	return &dto.BlocksResponse{
		RunID:  runID,
		Index:  index,
		Score:  combo.Score,
		Blocks: blocks,
	}, nil
}

// buildParams resolves course names against the catalog and normalises the
// request enums into engine parameters.
func (s *scheduleService) buildParams(catalog *models.Catalog, req dto.GenerateScheduleRequest) (scheduler.Params, error) {
	courses := make([]scheduler.CourseCandidates, 0, len(req.Courses))
	seen := make(map[string]struct{}, len(req.Courses))
	for _, name := range req.Courses {
		if _, dup := seen[name]; dup {
			return scheduler.Params{}, apperrors.Clone(apperrors.ErrValidation, fmt.Sprintf("course %q selected twice", name))
		}
		seen[name] = struct{}{}
		sections, ok := catalog.Sections[name]
		if !ok {
			return scheduler.Params{}, apperrors.Clone(apperrors.ErrValidation, fmt.Sprintf("course %q not in catalog", name))
		}
		courses = append(courses, scheduler.CourseCandidates{Course: name, Sections: sections})
	}

	slot, err := models.ParseSlotPreference(req.Slot)
	if err != nil {
		return scheduler.Params{}, apperrors.Wrap(err, apperrors.ErrValidation.Code, apperrors.ErrValidation.Status, err.Error())
	}
	slotMode, err := models.ParseConstraintMode(req.SlotMode)
	if err != nil {
		return scheduler.Params{}, apperrors.Wrap(err, apperrors.ErrValidation.Code, apperrors.ErrValidation.Status, err.Error())
	}
	vetoMode, err := models.ParseConstraintMode(req.VetoMode)
	if err != nil {
		return scheduler.Params{}, apperrors.Wrap(err, apperrors.ErrValidation.Code, apperrors.ErrValidation.Status, err.Error())
	}
	policy, err := models.ParseScoringPolicy(req.Policy)
	if err != nil {
		return scheduler.Params{}, apperrors.Wrap(err, apperrors.ErrValidation.Code, apperrors.ErrValidation.Status, err.Error())
	}

	ranking := make(map[string]int, len(req.Ranking))
	for i, teacher := range req.Ranking {
		if _, dup := ranking[teacher]; !dup {
			ranking[teacher] = i
		}
	}
	banned := make(map[string]struct{}, len(req.Banned))
	for _, teacher := range req.Banned {
		banned[teacher] = struct{}{}
	}

	return scheduler.Params{
		Courses:         courses,
		Ranking:         ranking,
		Banned:          banned,
		Slot:            slot,
		SlotMode:        slotMode,
		VetoMode:        vetoMode,
		MinFreeDays:     req.MinFreeDays,
		Weights:         req.Weights.ToModel(),
		Policy:          policy,
		MaxCombinations: s.cfg.MaxCombinations,
	}, nil
}

func (s *scheduleService) storeRun(run *models.ScheduleRun) {
	s.mu.Lock()
	now := time.Now()
	for id, entry := range s.runs {
		if now.After(entry.expiresAt) {
			delete(s.runs, id)
		}
	}
	s.runs[run.ID] = runEntry{run: run, expiresAt: now.Add(s.cfg.RunTTL)}
	s.mu.Unlock()
}

func (s *scheduleService) response(run *models.ScheduleRun, limit int) *dto.GenerateScheduleResponse {
	combos := run.Combinations
	if limit > 0 && limit < len(combos) {
		combos = combos[:limit]
	}
	return &dto.GenerateScheduleResponse{
		RunID:        run.ID,
		Combinations: combos,
		Stats:        run.Stats,
		Total:        len(run.Combinations),
	}
}

// runCacheKey derives a stable digest of every parameter that affects run
// output. The limit is excluded since the full result set is cached.
func runCacheKey(req dto.GenerateScheduleRequest) string {
	banned := append([]string(nil), req.Banned...)
	sort.Strings(banned)

	payload, _ := json.Marshal(struct {
		CatalogID   string         `json:"catalogId"`
		Courses     []string       `json:"courses"`
		Ranking     []string       `json:"ranking"`
		Banned      []string       `json:"banned"`
		Slot        string         `json:"slot"`
		SlotMode    string         `json:"slotMode"`
		VetoMode    string         `json:"vetoMode"`
		MinFreeDays int            `json:"minFreeDays"`
		Weights     models.Weights `json:"weights"`
		Policy      string         `json:"policy"`
	}{
		CatalogID:   req.CatalogID,
		Courses:     req.Courses,
		Ranking:     req.Ranking,
		Banned:      banned,
		Slot:        req.Slot,
		SlotMode:    req.SlotMode,
		VetoMode:    req.VetoMode,
		MinFreeDays: req.MinFreeDays,
		Weights:     req.Weights.ToModel(),
		Policy:      req.Policy,
	})
	digest := sha256.Sum256(payload)
	return "run:" + hex.EncodeToString(digest[:])
}
