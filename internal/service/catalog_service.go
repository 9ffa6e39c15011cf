package service

import (
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/horarium/timetable-api/internal/csvio"
	"github.com/horarium/timetable-api/internal/models"
	"github.com/horarium/timetable-api/internal/scheduler"
	apperrors "github.com/horarium/timetable-api/pkg/errors"
)

// CatalogService ingests section catalogs and retains them in memory with a
// TTL. Catalogs are session-scoped working data, not persisted records.
type CatalogService interface {
	UploadCSV(r io.Reader, mapping models.ColumnMapping) (*models.Catalog, time.Time, error)
	Get(id string) (*models.Catalog, time.Time, error)
	Courses(id string) ([]models.CourseSummary, error)
	Teachers(id string) ([]string, error)
}

type catalogEntry struct {
	catalog   *models.Catalog
	expiresAt time.Time
}

type catalogService struct {
	mu      sync.RWMutex
	entries map[string]catalogEntry
	ttl     time.Duration
	logger  *zap.Logger
}

// NewCatalogService builds the in-memory catalog store.
func NewCatalogService(ttl time.Duration, logger *zap.Logger) CatalogService {
	return &catalogService{
		entries: make(map[string]catalogEntry),
		ttl:     ttl,
		logger:  logger,
	}
}

func (s *catalogService) UploadCSV(r io.Reader, mapping models.ColumnMapping) (*models.Catalog, time.Time, error) {
	rows, err := csvio.Load(r, mapping)
	if err != nil {
		return nil, time.Time{}, err
	}

	sections, courseOrder := scheduler.BuildSections(rows)

	catalog := &models.Catalog{
		ID:       uuid.NewString(),
		Sections: sections,
		Courses:  courseOrder,
		Teachers: collectTeachers(sections, courseOrder),
		RowCount: len(rows),
		LoadedAt: time.Now().UTC(),
	}
	expiresAt := catalog.LoadedAt.Add(s.ttl)

	s.mu.Lock()
	s.sweepLocked()
	s.entries[catalog.ID] = catalogEntry{catalog: catalog, expiresAt: expiresAt}
	s.mu.Unlock()

	s.logger.Info("catalog ingested",
		zap.String("catalog_id", catalog.ID),
		zap.Int("rows", catalog.RowCount),
		zap.Int("courses", len(catalog.Courses)),
		zap.Int("sections", catalog.SectionCount()),
	)
	return catalog, expiresAt, nil
}

func (s *catalogService) Get(id string) (*models.Catalog, time.Time, error) {
	s.mu.RLock()
	entry, ok := s.entries[id]
	s.mu.RUnlock()

	if !ok {
		return nil, time.Time{}, apperrors.ErrNotFound
	}
	if time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, id)
		s.mu.Unlock()
		return nil, time.Time{}, apperrors.ErrCatalogExpired
	}
	return entry.catalog, entry.expiresAt, nil
}

func (s *catalogService) Courses(id string) ([]models.CourseSummary, error) {
	catalog, _, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	summaries := make([]models.CourseSummary, 0, len(catalog.Courses))
	for _, course := range catalog.Courses {
		summaries = append(summaries, models.CourseSummary{
			Name:         course,
			SectionCount: len(catalog.Sections[course]),
		})
	}
	return summaries, nil
}

func (s *catalogService) Teachers(id string) ([]string, error) {
	catalog, _, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	return catalog.Teachers, nil
}

func (s *catalogService) sweepLocked() {
	now := time.Now()
	for id, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, id)
		}
	}
}

// collectTeachers lists distinct teachers in course then section order.
func collectTeachers(sections map[string][]models.Section, courseOrder []string) []string {
	seen := make(map[string]struct{})
	teachers := make([]string, 0)
	for _, course := range courseOrder {
		for _, section := range sections[course] {
			if section.Teacher == "" {
				continue
			}
			if _, ok := seen[section.Teacher]; ok {
				continue
			}
			seen[section.Teacher] = struct{}{}
			teachers = append(teachers, section.Teacher)
		}
	}
	return teachers
}
