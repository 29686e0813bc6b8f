package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"eventnotifier/internal/models/db_models"
	"eventnotifier/internal/models/request_models"
	"eventnotifier/internal/models/response_models"
	"eventnotifier/internal/repositories"
	"eventnotifier/pkg/utils"
)

// Inline form messages.
const (
	MsgTitleRequired    = "제목을 입력해 주세요."
	MsgLocationRequired = "장소를 입력해 주세요."
	MsgTitleTooLong     = "제목은 100자 이하로 입력해 주세요."
	MsgLocationTooLong  = "장소는 100자 이하로 입력해 주세요."
	MsgDateInvalid      = "날짜 형식이 올바르지 않습니다 (YYYY-MM-DD)."
	MsgDateOrder        = "종료일은 시작일보다 빠를 수 없습니다."
	MsgCategoryInvalid  = "카테고리를 선택해 주세요."
	MsgCategoryUnknown  = "존재하지 않는 카테고리입니다."
)

type EventServiceInterface interface {
	ListEvents(ctx context.Context, query request_models.ListEventsQuery) (*response_models.EventListPage, error)
	NewEventForm(ctx context.Context) (*response_models.EventFormPage, error)
	GetEventForm(ctx context.Context, eventID uint) (*response_models.EventFormPage, error)
	RejectedForm(ctx context.Context, eventID uint, form request_models.EventForm, verr *utils.ValidationError) (*response_models.EventFormPage, error)
	CreateEvent(ctx context.Context, form request_models.EventForm) (*db_models.Event, error)
	UpdateEvent(ctx context.Context, eventID uint, form request_models.EventForm) error
	DeleteEvent(ctx context.Context, eventID uint) (bool, error)
}

type EventServiceOption func(*EventService)

// WithClock overrides time.Now, which anchors "today" for days remaining.
func WithClock(now func() time.Time) EventServiceOption {
	return func(s *EventService) { s.now = now }
}

type EventService struct {
	eventRepo    repositories.EventRepositoryInterface
	categoryRepo repositories.CategoryRepositoryInterface
	loc          *time.Location
	now          func() time.Time
}

func NewEventService(
	eventRepo repositories.EventRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	loc *time.Location,
	opts ...EventServiceOption,
) EventServiceInterface {
	if loc == nil {
		loc = utils.DefaultLocation()
	}
	s := &EventService{
		eventRepo:    eventRepo,
		categoryRepo: categoryRepo,
		loc:          loc,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *EventService) today() time.Time {
	return utils.Today(s.now(), s.loc)
}

func dbError(err error) error {
	return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
}

func (s *EventService) ListEvents(ctx context.Context, query request_models.ListEventsQuery) (*response_models.EventListPage, error) {
	today := s.today()
	page := &response_models.EventListPage{
		ActiveOnly: query.Active,
		Today:      utils.FormatDate(today),
	}

	filter := repositories.EventFilter{}
	if query.CategoryID != "" {
		id, err := strconv.ParseUint(strings.TrimSpace(query.CategoryID), 10, 64)
		if err != nil || id == 0 {
			return nil, utils.ErrCategoryNotFound
		}
		filter.CategoryID = uint(id)
		page.FilterCategory = uint(id)
	}
	if query.Active {
		filter.EndingOnOrAfter = today
	}

	categories, err := s.categoryOptions(ctx, page.FilterCategory)
	if err != nil {
		return nil, err
	}
	page.Categories = categories

	events, err := s.eventRepo.ListEvents(ctx, filter)
	if err != nil {
		return nil, dbError(err)
	}

	page.Events = make([]response_models.EventView, 0, len(events))
	for i := range events {
		page.Events = append(page.Events, toEventView(&events[i], today))
	}
	return page, nil
}

func (s *EventService) NewEventForm(ctx context.Context) (*response_models.EventFormPage, error) {
	categories, err := s.categoryOptions(ctx, 0)
	if err != nil {
		return nil, err
	}
	return &response_models.EventFormPage{
		Action:     "/new",
		Categories: categories,
		Errors:     map[string]string{},
	}, nil
}

func (s *EventService) GetEventForm(ctx context.Context, eventID uint) (*response_models.EventFormPage, error) {
	event, err := s.findEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	categories, err := s.categoryOptions(ctx, event.CategoryID)
	if err != nil {
		return nil, err
	}

	view := toEventView(event, s.today())
	return &response_models.EventFormPage{
		Action:     fmt.Sprintf("/%d", event.EventID),
		EventID:    event.EventID,
		Event:      &view,
		Form:       toForm(event),
		Categories: categories,
		Errors:     map[string]string{},
	}, nil
}

// RejectedForm rebuilds a form page around a submission that failed validation.
// eventID 0 means the create form.
func (s *EventService) RejectedForm(ctx context.Context, eventID uint, form request_models.EventForm, verr *utils.ValidationError) (*response_models.EventFormPage, error) {
	var page *response_models.EventFormPage
	var err error
	if eventID == 0 {
		page, err = s.NewEventForm(ctx)
	} else {
		page, err = s.GetEventForm(ctx, eventID)
	}
	if err != nil {
		return nil, err
	}

	page.Form = form
	selected, _ := strconv.ParseUint(strings.TrimSpace(form.CategoryID), 10, 64)
	for i := range page.Categories {
		page.Categories[i].Selected = uint64(page.Categories[i].ID) == selected
	}
	if verr != nil {
		page.Errors = verr.Fields
	}
	return page, nil
}

func (s *EventService) CreateEvent(ctx context.Context, form request_models.EventForm) (*db_models.Event, error) {
	event, err := s.validate(ctx, form)
	if err != nil {
		return nil, err
	}

	if err := s.eventRepo.CreateEvent(ctx, event); err != nil {
		return nil, dbError(err)
	}
	return event, nil
}

func (s *EventService) UpdateEvent(ctx context.Context, eventID uint, form request_models.EventForm) error {
	if _, err := s.findEvent(ctx, eventID); err != nil {
		return err
	}

	event, err := s.validate(ctx, form)
	if err != nil {
		return err
	}
	event.EventID = eventID

	found, err := s.eventRepo.UpdateEvent(ctx, event)
	if err != nil {
		return dbError(err)
	}
	if !found {
		return utils.ErrEventNotFound
	}
	return nil
}

// DeleteEvent removes the event if present. Deleting a missing id is not an error;
// the bool reports whether a row was removed.
func (s *EventService) DeleteEvent(ctx context.Context, eventID uint) (bool, error) {
	deleted, err := s.eventRepo.DeleteEvent(ctx, eventID)
	if err != nil {
		return false, dbError(err)
	}
	return deleted, nil
}

func (s *EventService) findEvent(ctx context.Context, eventID uint) (*db_models.Event, error) {
	if eventID == 0 {
		return nil, utils.ErrEventNotFound
	}
	event, err := s.eventRepo.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, dbError(err)
	}
	if event == nil {
		return nil, utils.ErrEventNotFound
	}
	return event, nil
}

func (s *EventService) categoryOptions(ctx context.Context, selected uint) ([]response_models.CategoryOption, error) {
	categories, err := s.categoryRepo.GetAllCategories(ctx)
	if err != nil {
		return nil, dbError(err)
	}

	options := make([]response_models.CategoryOption, 0, len(categories))
	for _, c := range categories {
		options = append(options, response_models.CategoryOption{
			ID:       c.CategoryID,
			Name:     c.CategoryName,
			Selected: c.CategoryID == selected,
		})
	}
	return options, nil
}

// validate turns a submitted form into an event row, or a *utils.ValidationError.
func (s *EventService) validate(ctx context.Context, form request_models.EventForm) (*db_models.Event, error) {
	verr := utils.NewValidationError()

	event := &db_models.Event{
		Title:       strings.TrimSpace(form.Title),
		Description: strings.TrimSpace(form.Description),
		Location:    strings.TrimSpace(form.Location),
	}
	switch {
	case event.Title == "":
		verr.Add("title", MsgTitleRequired)
	case utf8.RuneCountInString(event.Title) > db_models.TitleMaxLen:
		verr.Add("title", MsgTitleTooLong)
	}
	switch {
	case event.Location == "":
		verr.Add("location", MsgLocationRequired)
	case utf8.RuneCountInString(event.Location) > db_models.LocationMaxLen:
		verr.Add("location", MsgLocationTooLong)
	}

	start, startErr := utils.ParseDate(form.StartDate)
	if startErr != nil {
		verr.Add("start_date", MsgDateInvalid)
	}
	end, endErr := utils.ParseDate(form.EndDate)
	if endErr != nil {
		verr.Add("end_date", MsgDateInvalid)
	}
	if startErr == nil && endErr == nil && start.After(end) {
		verr.Add("end_date", MsgDateOrder)
	}
	event.StartDate, event.EndDate = start, end

	categoryID, err := strconv.ParseUint(strings.TrimSpace(form.CategoryID), 10, 64)
	if err != nil || categoryID == 0 {
		verr.Add("category_id", MsgCategoryInvalid)
	} else {
		category, err := s.categoryRepo.GetCategoryByID(ctx, uint(categoryID))
		if err != nil {
			return nil, dbError(err)
		}
		if category == nil {
			verr.Add("category_id", MsgCategoryUnknown)
		} else {
			event.CategoryID = category.CategoryID
		}
	}

	if verr.HasErrors() {
		return nil, verr
	}
	return event, nil
}

func toEventView(event *db_models.Event, today time.Time) response_models.EventView {
	days := utils.DaysUntil(event.StartDate, today)
	return response_models.EventView{
		ID:            event.EventID,
		Title:         event.Title,
		Description:   event.Description,
		Location:      event.Location,
		StartDate:     utils.FormatDate(event.StartDate),
		EndDate:       utils.FormatDate(event.EndDate),
		CategoryID:    event.CategoryID,
		CategoryName:  event.Category.CategoryName,
		DaysRemaining: days,
		DDay:          utils.DDayLabel(days),
		Ended:         utils.StoredDate(event.EndDate).Before(today),
	}
}

func toForm(event *db_models.Event) request_models.EventForm {
	return request_models.EventForm{
		Title:       event.Title,
		Description: event.Description,
		Location:    event.Location,
		StartDate:   utils.FormatDate(event.StartDate),
		EndDate:     utils.FormatDate(event.EndDate),
		CategoryID:  strconv.FormatUint(uint64(event.CategoryID), 10),
	}
}
