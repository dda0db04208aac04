package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppointmentStatus represents the lifecycle state of an appointment.
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusUpcoming  AppointmentStatus = "upcoming"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusRejected  AppointmentStatus = "rejected"
)

// legalTransitions lists, per current status, the statuses an
// appointment may move to. completed, cancelled and rejected are
// terminal.
var legalTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusPending:  {AppointmentStatusUpcoming, AppointmentStatusRejected},
	AppointmentStatusUpcoming: {AppointmentStatusCompleted, AppointmentStatusCancelled},
}

// CanTransition reports whether moving from to next is a legal status
// change.
func (s AppointmentStatus) CanTransition(next AppointmentStatus) bool {
	for _, allowed := range legalTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s AppointmentStatus) IsTerminal() bool {
	return len(legalTransitions[s]) == 0
}

// Appointment represents an appointment request or booking against a
// service center. AppointmentDate stays nil while a public request is
// pending review; CancellationReason is set only on cancel/reject.
type Appointment struct {
	ID                 uuid.UUID         `json:"id" gorm:"type:char(36);primaryKey"`
	Name               string            `json:"name" gorm:"size:100;not null;index"`
	Email              string            `json:"email" gorm:"size:100;not null;index"`
	Contact            string            `json:"contact" gorm:"size:20;not null;index"`
	Status             AppointmentStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	AppointmentDate    *time.Time        `json:"appointment_date" gorm:"index"`
	Notes              string            `json:"notes,omitempty" gorm:"type:text"`
	CancellationReason string            `json:"cancellation_reason,omitempty" gorm:"type:text"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
