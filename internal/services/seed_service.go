package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/rs/zerolog"

	"eventnotifier/internal/models/db_models"
	"eventnotifier/internal/repositories"
	"eventnotifier/internal/seed"
)

const seedBatchSize = 100

type FileReport struct {
	Path     string
	Inserted int
	Skipped  int
	Err      error
}

type SeedReport struct {
	CategoriesInserted int
	// EventsPresent is set when the event table already had rows, so no file was read
	EventsPresent bool
	Files         []FileReport
}

func (r *SeedReport) EventsInserted() int {
	total := 0
	for _, f := range r.Files {
		total += f.Inserted
	}
	return total
}

type SeedServiceInterface interface {
	Seed(ctx context.Context) (*SeedReport, error)
}

type SeedService struct {
	categoryRepo repositories.CategoryRepositoryInterface
	eventRepo    repositories.EventRepositoryInterface
	categories   []string
	manifestPath string
	log          zerolog.Logger
}

// NewSeedService seeds the given fixed categories and the dumps listed in
// manifestPath. An empty manifestPath seeds categories only.
func NewSeedService(
	categoryRepo repositories.CategoryRepositoryInterface,
	eventRepo repositories.EventRepositoryInterface,
	categories []string,
	manifestPath string,
	log zerolog.Logger,
) SeedServiceInterface {
	return &SeedService{
		categoryRepo: categoryRepo,
		eventRepo:    eventRepo,
		categories:   categories,
		manifestPath: manifestPath,
		log:          log.With().Str("component", "seed").Logger(),
	}
}

// Seed fills an empty store. Categories are inserted only into an empty
// category table and dumps are read only into an empty event table, so
// running it again against a populated store changes nothing.
func (s *SeedService) Seed(ctx context.Context) (*SeedReport, error) {
	report := &SeedReport{}

	inserted, err := s.seedCategories(ctx)
	if err != nil {
		return report, err
	}
	report.CategoriesInserted = inserted

	count, err := s.eventRepo.CountEvents(ctx)
	if err != nil {
		return report, dbError(err)
	}
	if count > 0 {
		report.EventsPresent = true
		s.log.Info().Int64("events", count).Msg("event table not empty, skipping dump ingestion")
		return report, nil
	}

	if s.manifestPath == "" {
		return report, nil
	}
	manifest, err := seed.LoadManifest(s.manifestPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.log.Warn().Str("manifest", s.manifestPath).Msg("seed manifest not found, skipping dump ingestion")
			return report, nil
		}
		return report, err
	}

	ids, err := s.categoryIDs(ctx)
	if err != nil {
		return report, err
	}

	for _, src := range manifest.Sources {
		file := s.seedSource(ctx, src, ids)
		report.Files = append(report.Files, file)
	}

	s.log.Info().
		Int("categories", report.CategoriesInserted).
		Int("events", report.EventsInserted()).
		Int("files", len(report.Files)).
		Msg("seeding finished")
	return report, nil
}

func (s *SeedService) seedCategories(ctx context.Context) (int, error) {
	count, err := s.categoryRepo.CountCategories(ctx)
	if err != nil {
		return 0, dbError(err)
	}
	if count > 0 {
		return 0, nil
	}

	for _, name := range s.categories {
		category := &db_models.Category{CategoryName: seed.NormalizeName(name)}
		if err := s.categoryRepo.CreateCategory(ctx, category); err != nil {
			return 0, dbError(err)
		}
	}
	s.log.Info().Int("count", len(s.categories)).Msg("inserted fixed categories")
	return len(s.categories), nil
}

func (s *SeedService) categoryIDs(ctx context.Context) (map[string]uint, error) {
	categories, err := s.categoryRepo.GetAllCategories(ctx)
	if err != nil {
		return nil, dbError(err)
	}
	ids := make(map[string]uint, len(categories))
	for _, c := range categories {
		ids[seed.NormalizeName(c.CategoryName)] = c.CategoryID
	}
	return ids, nil
}

func (s *SeedService) seedSource(ctx context.Context, src seed.Source, ids map[string]uint) FileReport {
	report := FileReport{Path: src.Path}
	log := s.log.With().Str("file", src.Path).Logger()

	records, err := seed.ReadRecords(src.Path)
	if err != nil {
		report.Err = err
		log.Error().Err(err).Msg("failed to read seed file")
		return report
	}

	events := make([]db_models.Event, 0, len(records))
	for i, rec := range records {
		mapped, err := src.Map(rec)
		if err != nil {
			report.Skipped++
			log.Debug().Err(err).Int("record", i).Msg("skipping record")
			continue
		}

		categoryID, ok := ids[mapped.CategoryName]
		if !ok && src.DefaultCategory != "" {
			categoryID, ok = ids[seed.NormalizeName(src.DefaultCategory)]
		}
		if !ok {
			report.Skipped++
			log.Debug().Int("record", i).Str("category", mapped.CategoryName).Msg("skipping record with unknown category")
			continue
		}

		events = append(events, db_models.Event{
			Title:       mapped.Title,
			Description: mapped.Description,
			Location:    mapped.Location,
			StartDate:   mapped.StartDate,
			EndDate:     mapped.EndDate,
			CategoryID:  categoryID,
		})
	}

	if err := s.eventRepo.CreateEvents(ctx, events, seedBatchSize); err != nil {
		report.Err = fmt.Errorf("failed to insert events: %w", dbError(err))
		log.Error().Err(err).Msg("failed to insert seed events")
		return report
	}
	report.Inserted = len(events)

	log.Info().Int("inserted", report.Inserted).Int("skipped", report.Skipped).Msg("seed file loaded")
	return report
}
