package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "carebook/internal/errors"
	"carebook/internal/model"
	"carebook/internal/notify"
	"carebook/internal/repository"
)

const dateDisplayFormat = "Monday, 02 Jan 2006 at 15:04 MST"

// ListParams bundles filter, pagination and ordering for a listing.
type ListParams struct {
	Filter    repository.ListFilter
	Skip      int
	Limit     int
	OrderBy   string
	OrderDesc bool
}

// ListResult is one page of appointments plus pagination info.
type ListResult struct {
	Items []model.Appointment `json:"items"`
	Total int64               `json:"total"`
	Page  int                 `json:"page"`
	Pages int                 `json:"pages"`
	Size  int                 `json:"size"`
}

// CreatePublicInput is a public appointment request. No date: the
// request waits for staff review.
type CreatePublicInput struct {
	Name    string
	Email   string
	Contact string
	Notes   string
}

// ScheduleInput is a staff-created booking with a confirmed date.
type ScheduleInput struct {
	Name            string
	Email           string
	Contact         string
	AppointmentDate time.Time
	Notes           string
}

// ConfirmInput confirms a pending request with a date.
type ConfirmInput struct {
	AppointmentDate time.Time
	Notes           string
}

// RescheduleInput moves an appointment to a new date.
type RescheduleInput struct {
	AppointmentDate time.Time
}

// CancelInput carries the reason for a cancel or reject.
type CancelInput struct {
	Reason string
}

// CompleteInput closes out an appointment with optional notes.
type CompleteInput struct {
	Notes string
}

// AppointmentService owns the appointment lifecycle: creation, the
// five status transitions, hard delete and the filtered listing.
type AppointmentService interface {
	List(ctx context.Context, params ListParams) (*ListResult, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	CreatePending(ctx context.Context, input CreatePublicInput) (*model.Appointment, error)
	Schedule(ctx context.Context, input ScheduleInput, actor uuid.UUID) (*model.Appointment, error)
	Confirm(ctx context.Context, id uuid.UUID, input ConfirmInput, actor uuid.UUID) (*model.Appointment, error)
	Reschedule(ctx context.Context, id uuid.UUID, input RescheduleInput, actor uuid.UUID) (*model.Appointment, error)
	Cancel(ctx context.Context, id uuid.UUID, input CancelInput, actor uuid.UUID) (*model.Appointment, error)
	Reject(ctx context.Context, id uuid.UUID, input CancelInput, actor uuid.UUID) (*model.Appointment, error)
	Complete(ctx context.Context, id uuid.UUID, input CompleteInput, actor uuid.UUID) (*model.Appointment, error)
	Delete(ctx context.Context, id uuid.UUID, actor uuid.UUID) error
}

type appointmentService struct {
	repo     repository.AppointmentRepository
	notifier notify.Notifier

	// Mutex map serializing transitions per appointment id, so two
	// concurrent transitions cannot both pass the precondition check.
	idMutexes sync.Map

	now func() time.Time
}

// NewAppointmentService creates a new appointment service.
func NewAppointmentService(repo repository.AppointmentRepository, notifier notify.Notifier) AppointmentService {
	return &appointmentService{
		repo:     repo,
		notifier: notifier,
		now:      time.Now,
	}
}

func (s *appointmentService) getMutex(id uuid.UUID) *sync.Mutex {
	value, _ := s.idMutexes.LoadOrStore(id.String(), &sync.Mutex{})
	return value.(*sync.Mutex)
}

// List validates pagination bounds and the filter, then delegates to
// the repository.
func (s *appointmentService) List(ctx context.Context, params ListParams) (*ListResult, error) {
	if params.Skip < 0 {
		return nil, apperrors.NewValidation("skip must be non-negative")
	}
	if params.Limit < 1 || params.Limit > 100 {
		return nil, apperrors.NewValidation("limit must be between 1 and 100")
	}
	if err := params.Filter.Validate(); err != nil {
		return nil, err
	}

	items, total, err := s.repo.List(ctx, params.Filter, params.Skip, params.Limit, params.OrderBy, params.OrderDesc)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	if items == nil {
		items = []model.Appointment{}
	}

	return &ListResult{
		Items: items,
		Total: total,
		Page:  params.Skip/params.Limit + 1,
		Pages: int((total + int64(params.Limit) - 1) / int64(params.Limit)),
		Size:  params.Limit,
	}, nil
}

// Get fetches an appointment by id.
func (s *appointmentService) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	return s.load(ctx, id)
}

// CreatePending registers a public appointment request. A second
// pending request for the same email is rejected.
func (s *appointmentService) CreatePending(ctx context.Context, input CreatePublicInput) (*model.Appointment, error) {
	name, err := validateName(input.Name)
	if err != nil {
		return nil, err
	}
	contact, err := validateContact(input.Contact)
	if err != nil {
		return nil, err
	}
	notes, err := validateNotes(input.Notes)
	if err != nil {
		return nil, err
	}

	if existing, err := s.repo.FindPendingByEmail(ctx, input.Email); err == nil && existing != nil {
		return nil, apperrors.ErrDuplicatePending
	} else if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check pending request: %w", err)
	}

	appt := &model.Appointment{
		Name:    name,
		Email:   input.Email,
		Contact: contact,
		Notes:   notes,
		Status:  model.AppointmentStatusPending,
	}
	if err := s.repo.Create(ctx, appt); err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}
	log.Printf("appointment %s created as pending request for %s", appt.ID, appt.Email)

	s.notifier.Notify(ctx, notify.Event{
		Name: notify.EventAcknowledgement,
		Payload: map[string]string{
			notify.KeyEmailTo: appt.Email,
			notify.KeyName:    appt.Name,
		},
	})
	return appt, nil
}

// Schedule books an appointment directly with a confirmed future date.
func (s *appointmentService) Schedule(ctx context.Context, input ScheduleInput, actor uuid.UUID) (*model.Appointment, error) {
	name, err := validateName(input.Name)
	if err != nil {
		return nil, err
	}
	contact, err := validateContact(input.Contact)
	if err != nil {
		return nil, err
	}
	notes, err := validateNotes(input.Notes)
	if err != nil {
		return nil, err
	}
	date, err := validateFutureDate(input.AppointmentDate, s.now())
	if err != nil {
		return nil, err
	}

	appt := &model.Appointment{
		Name:            name,
		Email:           input.Email,
		Contact:         contact,
		Notes:           notes,
		Status:          model.AppointmentStatusUpcoming,
		AppointmentDate: &date,
	}
	if err := s.repo.Create(ctx, appt); err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}
	log.Printf("appointment %s scheduled for %s by %s", appt.ID, date.Format(time.RFC3339), actor)

	s.notifier.Notify(ctx, notify.Event{
		Name: notify.EventBooking,
		Payload: map[string]string{
			notify.KeyEmailTo: appt.Email,
			notify.KeyName:    appt.Name,
			notify.KeyDate:    date.Format(dateDisplayFormat),
		},
	})
	return appt, nil
}

// Confirm moves a pending request to upcoming with a confirmed date.
func (s *appointmentService) Confirm(ctx context.Context, id uuid.UUID, input ConfirmInput, actor uuid.UUID) (*model.Appointment, error) {
	mutex := s.getMutex(id)
	mutex.Lock()
	defer mutex.Unlock()

	appt, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !appt.Status.CanTransition(model.AppointmentStatusUpcoming) {
		return nil, &apperrors.TransitionError{Action: "confirm", CurrentStatus: string(appt.Status)}
	}

	date, err := validateFutureDate(input.AppointmentDate, s.now())
	if err != nil {
		return nil, err
	}
	update := repository.AppointmentUpdate{
		Status:          statusPtr(model.AppointmentStatusUpcoming),
		AppointmentDate: &date,
	}
	if input.Notes != "" {
		notes, err := validateNotes(input.Notes)
		if err != nil {
			return nil, err
		}
		update.Notes = &notes
	}

	updated, err := s.update(ctx, id, update)
	if err != nil {
		return nil, err
	}
	log.Printf("appointment %s confirmed for %s by %s", id, date.Format(time.RFC3339), actor)

	s.notifier.Notify(ctx, notify.Event{
		Name: notify.EventConfirmation,
		Payload: map[string]string{
			notify.KeyEmailTo: updated.Email,
			notify.KeyName:    updated.Name,
			notify.KeyDate:    date.Format(dateDisplayFormat),
		},
	})
	return updated, nil
}

// Reschedule overwrites the appointment date. Any existing record may
// be rescheduled; the status is left unchanged.
func (s *appointmentService) Reschedule(ctx context.Context, id uuid.UUID, input RescheduleInput, actor uuid.UUID) (*model.Appointment, error) {
	mutex := s.getMutex(id)
	mutex.Lock()
	defer mutex.Unlock()

	appt, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	date, err := validateFutureDate(input.AppointmentDate, s.now())
	if err != nil {
		return nil, err
	}

	oldDate := "not yet scheduled"
	if appt.AppointmentDate != nil {
		oldDate = appt.AppointmentDate.Format(dateDisplayFormat)
	}

	updated, err := s.update(ctx, id, repository.AppointmentUpdate{AppointmentDate: &date})
	if err != nil {
		return nil, err
	}
	log.Printf("appointment %s rescheduled to %s by %s", id, date.Format(time.RFC3339), actor)

	s.notifier.Notify(ctx, notify.Event{
		Name: notify.EventReschedule,
		Payload: map[string]string{
			notify.KeyEmailTo: updated.Email,
			notify.KeyName:    updated.Name,
			notify.KeyOldDate: oldDate,
			notify.KeyNewDate: date.Format(dateDisplayFormat),
		},
	})
	return updated, nil
}

// Cancel calls off an upcoming appointment with a reason.
func (s *appointmentService) Cancel(ctx context.Context, id uuid.UUID, input CancelInput, actor uuid.UUID) (*model.Appointment, error) {
	return s.terminate(ctx, id, input, actor, "cancel",
		model.AppointmentStatusCancelled, notify.EventCancellation)
}

// Reject declines a pending request with a reason.
func (s *appointmentService) Reject(ctx context.Context, id uuid.UUID, input CancelInput, actor uuid.UUID) (*model.Appointment, error) {
	return s.terminate(ctx, id, input, actor, "reject",
		model.AppointmentStatusRejected, notify.EventRejection)
}

// terminate is the shared cancel/reject path: both set a reason and
// land in a terminal state the transition table must allow.
func (s *appointmentService) terminate(
	ctx context.Context,
	id uuid.UUID,
	input CancelInput,
	actor uuid.UUID,
	action string,
	next model.AppointmentStatus,
	event string,
) (*model.Appointment, error) {
	mutex := s.getMutex(id)
	mutex.Lock()
	defer mutex.Unlock()

	appt, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !appt.Status.CanTransition(next) {
		return nil, &apperrors.TransitionError{Action: action, CurrentStatus: string(appt.Status)}
	}

	reason, err := validateReason(input.Reason)
	if err != nil {
		return nil, err
	}

	updated, err := s.update(ctx, id, repository.AppointmentUpdate{
		Status:             statusPtr(next),
		CancellationReason: &reason,
	})
	if err != nil {
		return nil, err
	}
	log.Printf("appointment %s %sed by %s: %s", id, action, actor, reason)

	s.notifier.Notify(ctx, notify.Event{
		Name: event,
		Payload: map[string]string{
			notify.KeyEmailTo: updated.Email,
			notify.KeyName:    updated.Name,
			notify.KeyReason:  reason,
		},
	})
	return updated, nil
}

// Complete closes out an upcoming appointment.
func (s *appointmentService) Complete(ctx context.Context, id uuid.UUID, input CompleteInput, actor uuid.UUID) (*model.Appointment, error) {
	mutex := s.getMutex(id)
	mutex.Lock()
	defer mutex.Unlock()

	appt, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !appt.Status.CanTransition(model.AppointmentStatusCompleted) {
		return nil, &apperrors.TransitionError{Action: "complete", CurrentStatus: string(appt.Status)}
	}

	update := repository.AppointmentUpdate{
		Status: statusPtr(model.AppointmentStatusCompleted),
	}
	if input.Notes != "" {
		notes, err := validateNotes(input.Notes)
		if err != nil {
			return nil, err
		}
		update.Notes = &notes
	}

	updated, err := s.update(ctx, id, update)
	if err != nil {
		return nil, err
	}
	log.Printf("appointment %s completed by %s", id, actor)

	s.notifier.Notify(ctx, notify.Event{
		Name: notify.EventFollowUp,
		Payload: map[string]string{
			notify.KeyEmailTo: updated.Email,
			notify.KeyName:    updated.Name,
		},
	})
	return updated, nil
}

// Delete permanently removes an appointment. No status precondition.
func (s *appointmentService) Delete(ctx context.Context, id uuid.UUID, actor uuid.UUID) error {
	appt, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrAppointmentNotFound
		}
		return fmt.Errorf("delete appointment: %w", err)
	}
	log.Printf("appointment %s (%s) permanently deleted by %s", id, appt.Name, actor)
	return nil
}

func (s *appointmentService) load(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	appt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("find appointment: %w", err)
	}
	return appt, nil
}

func (s *appointmentService) update(ctx context.Context, id uuid.UUID, update repository.AppointmentUpdate) (*model.Appointment, error) {
	updated, err := s.repo.Update(ctx, id, update)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("update appointment: %w", err)
	}
	return updated, nil
}

func statusPtr(s model.AppointmentStatus) *model.AppointmentStatus {
	return &s
}
