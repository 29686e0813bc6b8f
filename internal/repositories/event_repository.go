package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"eventnotifier/internal/models/db_models"
)

// EventFilter narrows ListEvents. Zero values disable a filter.
type EventFilter struct {
	CategoryID uint
	// EndingOnOrAfter hides events that ended before this date
	EndingOnOrAfter time.Time
}

type EventRepositoryInterface interface {
	CreateEvent(ctx context.Context, event *db_models.Event) error
	CreateEvents(ctx context.Context, events []db_models.Event, batchSize int) error
	GetEventByID(ctx context.Context, eventID uint) (*db_models.Event, error)
	ListEvents(ctx context.Context, filter EventFilter) ([]db_models.Event, error)
	UpdateEvent(ctx context.Context, event *db_models.Event) (bool, error)
	DeleteEvent(ctx context.Context, eventID uint) (bool, error)
	CountEvents(ctx context.Context) (int64, error)
}

func NewEventRepository(db *gorm.DB) EventRepositoryInterface {
	return &eventRepository{db: db}
}

type eventRepository struct {
	db *gorm.DB
}

func (r *eventRepository) CreateEvent(ctx context.Context, event *db_models.Event) error {
	return r.db.WithContext(ctx).Omit("Category").Create(event).Error
}

func (r *eventRepository) CreateEvents(ctx context.Context, events []db_models.Event, batchSize int) error {
	if len(events) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Omit("Category").CreateInBatches(events, batchSize).Error
}

func (r *eventRepository) GetEventByID(ctx context.Context, eventID uint) (*db_models.Event, error) {
	var event db_models.Event
	err := r.db.WithContext(ctx).
		Joins("Category").
		Where("event.event_id = ?", eventID).
		First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) ListEvents(ctx context.Context, filter EventFilter) ([]db_models.Event, error) {
	query := r.db.WithContext(ctx).Joins("Category")
	if filter.CategoryID != 0 {
		query = query.Where("event.category_id = ?", filter.CategoryID)
	}
	if !filter.EndingOnOrAfter.IsZero() {
		query = query.Where("event.end_date >= ?", filter.EndingOnOrAfter)
	}

	var events []db_models.Event
	err := query.Order("event.start_date ASC").Order("event.event_id ASC").Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// UpdateEvent overwrites every column but the id. The bool reports whether the row existed.
func (r *eventRepository) UpdateEvent(ctx context.Context, event *db_models.Event) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&db_models.Event{}).
		Where("event_id = ?", event.EventID).
		Updates(map[string]interface{}{
			"title":       event.Title,
			"description": event.Description,
			"location":    event.Location,
			"start_date":  event.StartDate,
			"end_date":    event.EndDate,
			"category_id": event.CategoryID,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DeleteEvent reports whether a row was removed; a missing id is not an error.
func (r *eventRepository) DeleteEvent(ctx context.Context, eventID uint) (bool, error) {
	result := r.db.WithContext(ctx).Where("event_id = ?", eventID).Delete(&db_models.Event{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *eventRepository) CountEvents(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&db_models.Event{}).Count(&count).Error
	return count, err
}
