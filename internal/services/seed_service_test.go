package services

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventnotifier/internal/config"
	"eventnotifier/internal/infra"
	"eventnotifier/internal/models/request_models"
	"eventnotifier/internal/repositories"
	"eventnotifier/internal/testutil"
	"eventnotifier/pkg/utils"
)

const festivalsJSON = `{
  "fields": [{"id": "fstvlNm"}],
  "records": [
    {"fstvlNm": "Spring Festival", "fstvlCo": "flowers", "opar": "Seoul Forest",
     "fstvlStartDate": "2025-05-01", "fstvlEndDate": "2025-05-03"}
  ]
}`

const mixedJSON = `{
  "records": [
    {"name": "Pop-up A", "kind": "팝업", "begin": 20250601, "end": "2025.06.05", "venue": "Seongsu"},
    {"name": "", "kind": "팝업", "begin": "2025-06-01", "end": "2025-06-02"},
    {"name": "No dates", "kind": "공연"},
    {"name": "Bad date", "kind": "공연", "begin": "2025-13-40", "end": "2025-06-02"},
    {"name": "Gig", "kind": "공연", "begin": "2025-07-01", "end": "2025-07-01"},
    {"name": "Fallback", "kind": "???", "begin": "2025-08-01", "end": "2025-08-02"},
    "not an object"
  ]
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

type seedFixture struct {
	categoryRepo repositories.CategoryRepositoryInterface
	eventRepo    repositories.EventRepositoryInterface
	dir          string
}

func newSeedFixture(t *testing.T) *seedFixture {
	db := testutil.NewDB(t)
	return &seedFixture{
		categoryRepo: repositories.NewCategoryRepository(db),
		eventRepo:    repositories.NewEventRepository(db),
		dir:          t.TempDir(),
	}
}

func (f *seedFixture) seeder(manifest string) SeedServiceInterface {
	return NewSeedService(f.categoryRepo, f.eventRepo, config.FixedCategories, manifest, zerolog.Nop())
}

func TestSeedSpringFestivalScenario(t *testing.T) {
	ctx := context.Background()
	f := newSeedFixture(t)
	writeFile(t, f.dir, "festivals.json", festivalsJSON)
	manifest := writeFile(t, f.dir, "sources.yaml", `
sources:
  - path: festivals.json
    fields: {title: fstvlNm, description: fstvlCo, location: opar, start_date: fstvlStartDate, end_date: fstvlEndDate}
    category: 축제
`)

	report, err := f.seeder(manifest).Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, report.CategoriesInserted)
	assert.Equal(t, 1, report.EventsInserted())

	categories, err := f.categoryRepo.GetAllCategories(ctx)
	require.NoError(t, err)
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.CategoryName)
	}
	assert.Equal(t, config.FixedCategories, names)

	svc := NewEventService(f.eventRepo, f.categoryRepo, utils.DefaultLocation())
	page, err := svc.ListEvents(ctx, request_models.ListEventsQuery{})
	require.NoError(t, err)
	require.Len(t, page.Events, 1)
	assert.Equal(t, "Spring Festival", page.Events[0].Title)
	assert.Equal(t, "축제", page.Events[0].CategoryName)
	assert.Equal(t, "Seoul Forest", page.Events[0].Location)
}

func TestSeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newSeedFixture(t)
	writeFile(t, f.dir, "festivals.json", festivalsJSON)
	manifest := writeFile(t, f.dir, "sources.yaml", `
sources:
  - path: festivals.json
    fields: {title: fstvlNm, start_date: fstvlStartDate, end_date: fstvlEndDate}
    category: 축제
`)

	_, err := f.seeder(manifest).Seed(ctx)
	require.NoError(t, err)

	report, err := f.seeder(manifest).Seed(ctx)
	require.NoError(t, err)
	assert.Zero(t, report.CategoriesInserted)
	assert.True(t, report.EventsPresent)
	assert.Empty(t, report.Files)

	categories, err := f.categoryRepo.CountCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), categories)

	events, err := f.eventRepo.CountEvents(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), events)
}

func TestSeedSkipsMalformedRecords(t *testing.T) {
	ctx := context.Background()
	f := newSeedFixture(t)
	writeFile(t, f.dir, "mixed.json", mixedJSON)
	manifest := writeFile(t, f.dir, "sources.yaml", `
sources:
  - path: mixed.json
    fields: {title: name, location: venue, start_date: begin, end_date: end}
    category_field: kind
    category_map:
      팝업: 팝업 스토어
    default_category: 전시
`)

	report, err := f.seeder(manifest).Seed(ctx)
	require.NoError(t, err)
	require.Len(t, report.Files, 1)

	file := report.Files[0]
	assert.NoError(t, file.Err)
	assert.Equal(t, 3, file.Inserted)
	assert.Equal(t, 4, file.Skipped)

	events, err := f.eventRepo.ListEvents(ctx, repositories.EventFilter{})
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "Pop-up A", events[0].Title)
	assert.Equal(t, "팝업 스토어", events[0].Category.CategoryName)
	assert.Equal(t, "2025-06-01", utils.FormatDate(events[0].StartDate))
	assert.Equal(t, "2025-06-05", utils.FormatDate(events[0].EndDate))
	assert.Equal(t, "공연", events[1].Category.CategoryName)
	assert.Equal(t, "Fallback", events[2].Title)
	assert.Equal(t, "전시", events[2].Category.CategoryName)
}

func TestSeedSkipsOverlongRecordWithoutAbortingFile(t *testing.T) {
	ctx := context.Background()
	f := newSeedFixture(t)
	writeFile(t, f.dir, "long.json", `{"records": [
    {"name": "Short", "begin": "2025-06-01", "end": "2025-06-02", "venue": "Seongsu"},
    {"name": "`+strings.Repeat("축", 101)+`", "begin": "2025-06-01", "end": "2025-06-02"},
    {"name": "Far venue", "begin": "2025-06-03", "end": "2025-06-04", "venue": "`+strings.Repeat("v", 101)+`"},
    {"name": "Also short", "begin": "2025-06-05", "end": "2025-06-05"}
  ]}`)
	manifest := writeFile(t, f.dir, "sources.yaml", `
sources:
  - path: long.json
    fields: {title: name, location: venue, start_date: begin, end_date: end}
    category: 전시
`)

	report, err := f.seeder(manifest).Seed(ctx)
	require.NoError(t, err)
	require.Len(t, report.Files, 1)
	assert.NoError(t, report.Files[0].Err)
	assert.Equal(t, 2, report.Files[0].Inserted)
	assert.Equal(t, 2, report.Files[0].Skipped)

	events, err := f.eventRepo.ListEvents(ctx, repositories.EventFilter{})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Short", events[0].Title)
	assert.Equal(t, "Also short", events[1].Title)
}

// Runs the startup path used by serve: migrate through infra, seed categories
// with the seeder, then create and list through the event service.
func TestSeedThenCreateAndList(t *testing.T) {
	ctx := context.Background()
	db, err := infra.InitDatabase(&config.Config{
		DBDriver: config.DriverSQLite,
		DBDSN:    filepath.Join(t.TempDir(), "event_db.sqlite"),
	}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { infra.CloseDatabase(db, zerolog.Nop()) })

	categoryRepo := repositories.NewCategoryRepository(db)
	eventRepo := repositories.NewEventRepository(db)

	report, err := NewSeedService(categoryRepo, eventRepo, config.FixedCategories, "", zerolog.Nop()).Seed(ctx)
	require.NoError(t, err)
	require.Equal(t, len(config.FixedCategories), report.CategoriesInserted)

	categories, err := categoryRepo.GetAllCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, len(config.FixedCategories))

	svc := NewEventService(eventRepo, categoryRepo, utils.DefaultLocation(),
		WithClock(func() time.Time { return time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC) }))
	created, err := svc.CreateEvent(ctx, request_models.EventForm{
		Title:      "Jazz Night",
		Location:   "Hongdae",
		StartDate:  "2025-05-03",
		EndDate:    "2025-05-03",
		CategoryID: strconv.FormatUint(uint64(categories[4].CategoryID), 10),
	})
	require.NoError(t, err)
	assert.NotZero(t, created.EventID)

	page, err := svc.ListEvents(ctx, request_models.ListEventsQuery{})
	require.NoError(t, err)
	require.Len(t, page.Events, 1)
	assert.Equal(t, "Jazz Night", page.Events[0].Title)
	assert.Equal(t, "공연", page.Events[0].CategoryName)
	assert.Equal(t, "D-2", page.Events[0].DDay)

	// a category with events cannot be removed
	assert.Error(t, db.Delete(&categories[4]).Error)
}

func TestSeedMissingFileAbortsOnlyThatFile(t *testing.T) {
	ctx := context.Background()
	f := newSeedFixture(t)
	writeFile(t, f.dir, "festivals.json", festivalsJSON)
	writeFile(t, f.dir, "broken.json", `{"records": [`)
	manifest := writeFile(t, f.dir, "sources.yaml", `
sources:
  - path: missing.json
    fields: {title: fstvlNm, start_date: fstvlStartDate, end_date: fstvlEndDate}
    category: 전시
  - path: broken.json
    fields: {title: fstvlNm, start_date: fstvlStartDate, end_date: fstvlEndDate}
    category: 전시
  - path: festivals.json
    fields: {title: fstvlNm, start_date: fstvlStartDate, end_date: fstvlEndDate}
    category: 축제
`)

	report, err := f.seeder(manifest).Seed(ctx)
	require.NoError(t, err)
	require.Len(t, report.Files, 3)
	assert.Error(t, report.Files[0].Err)
	assert.Error(t, report.Files[1].Err)
	assert.NoError(t, report.Files[2].Err)
	assert.Equal(t, 5, report.CategoriesInserted)
	assert.Equal(t, 1, report.EventsInserted())
}

func TestSeedWithoutManifest(t *testing.T) {
	ctx := context.Background()

	t.Run("empty path seeds categories only", func(t *testing.T) {
		f := newSeedFixture(t)
		report, err := f.seeder("").Seed(ctx)
		require.NoError(t, err)
		assert.Equal(t, 5, report.CategoriesInserted)
		assert.Empty(t, report.Files)
	})

	t.Run("missing manifest is not fatal", func(t *testing.T) {
		f := newSeedFixture(t)
		report, err := f.seeder(filepath.Join(f.dir, "nope.yaml")).Seed(ctx)
		require.NoError(t, err)
		assert.Equal(t, 5, report.CategoriesInserted)
	})

	t.Run("invalid manifest is an error", func(t *testing.T) {
		f := newSeedFixture(t)
		manifest := writeFile(t, f.dir, "sources.yaml", "sources:\n  - path: a.json\n")
		_, err := f.seeder(manifest).Seed(ctx)
		assert.Error(t, err)
	})
}
