package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"carebook/internal/model"
)

// AppointmentUpdate lists exactly the fields a lifecycle transition
// may change. Nil fields are left untouched; timestamps are managed
// by the store and are deliberately absent.
type AppointmentUpdate struct {
	Status             *model.AppointmentStatus
	AppointmentDate    *time.Time
	Notes              *string
	CancellationReason *string
}

// columns converts the set fields into an update map.
func (u AppointmentUpdate) columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if u.Status != nil {
		cols["status"] = *u.Status
	}
	if u.AppointmentDate != nil {
		cols["appointment_date"] = *u.AppointmentDate
	}
	if u.Notes != nil {
		cols["notes"] = *u.Notes
	}
	if u.CancellationReason != nil {
		cols["cancellation_reason"] = *u.CancellationReason
	}
	return cols
}

// AppointmentRepository defines appointment persistence operations.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *model.Appointment) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	// FindPendingByEmail returns the pending request for an email, or
	// gorm.ErrRecordNotFound when none exists.
	FindPendingByEmail(ctx context.Context, email string) (*model.Appointment, error)
	Update(ctx context.Context, id uuid.UUID, update AppointmentUpdate) (*model.Appointment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns one page of appointments matching the filter plus
	// the total match count. The count ignores skip/limit but
	// respects every filter.
	List(ctx context.Context, filter ListFilter, skip, limit int, orderBy string, orderDesc bool) ([]model.Appointment, int64, error)
}

type appointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository creates a new appointment repository.
func NewAppointmentRepository(db *gorm.DB) AppointmentRepository {
	return &appointmentRepository{db: db}
}

// Create inserts a new appointment record.
func (r *appointmentRepository) Create(ctx context.Context, appt *model.Appointment) error {
	return r.db.WithContext(ctx).Create(appt).Error
}

// FindByID finds an appointment by ID.
func (r *appointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	var appt model.Appointment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&appt).Error; err != nil {
		return nil, err
	}
	return &appt, nil
}

// FindPendingByEmail finds an existing pending request for an email.
func (r *appointmentRepository) FindPendingByEmail(ctx context.Context, email string) (*model.Appointment, error) {
	var appt model.Appointment
	err := r.db.WithContext(ctx).
		Where("email = ? AND status = ?", email, model.AppointmentStatusPending).
		First(&appt).Error
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

// Update applies the set fields and returns the refreshed record.
// updated_at is refreshed by GORM on every mutation.
func (r *appointmentRepository) Update(ctx context.Context, id uuid.UUID, update AppointmentUpdate) (*model.Appointment, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Appointment{}).
		Where("id = ?", id).
		Updates(update.columns())
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}

// Delete permanently removes an appointment record.
func (r *appointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Appointment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List runs the count and page queries as two round-trips sharing the
// same filter predicate.
func (r *appointmentRepository) List(ctx context.Context, filter ListFilter, skip, limit int, orderBy string, orderDesc bool) ([]model.Appointment, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.Appointment{}).
		Scopes(filter.scope()).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	direction := "ASC"
	if orderDesc {
		direction = "DESC"
	}

	var appts []model.Appointment
	err = r.db.WithContext(ctx).
		Model(&model.Appointment{}).
		Scopes(filter.scope()).
		Order(OrderColumn(orderBy) + " " + direction).
		Offset(skip).
		Limit(limit).
		Find(&appts).Error
	if err != nil {
		return nil, 0, err
	}
	return appts, total, nil
}
