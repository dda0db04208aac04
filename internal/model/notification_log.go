package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationLog records a delivery attempt made by the notification
// worker. Written in batches, read only by operators.
type NotificationLog struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Event        string    `json:"event" gorm:"size:50;not null;index"`
	EmailTo      string    `json:"email_to" gorm:"size:100;not null;index"`
	Delivered    bool      `json:"delivered" gorm:"not null"`
	ErrorMessage string    `json:"error_message,omitempty" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at"`
}

// BeforeCreate sets UUID before creating the record.
func (n *NotificationLog) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
