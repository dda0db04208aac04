package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Center represents a service center appointments are booked against.
type Center struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name         string    `json:"name" gorm:"size:100;not null;index"`
	District     string    `json:"district" gorm:"size:100;not null;index"`
	Address      string    `json:"address" gorm:"type:text"`
	Location     string    `json:"location" gorm:"size:100;not null;index"`
	Landmark     string    `json:"landmark,omitempty" gorm:"size:100"`
	Pincode      string    `json:"pincode" gorm:"size:10;not null;index"`
	Contact      string    `json:"contact" gorm:"size:20;not null"`
	Email        string    `json:"email,omitempty" gorm:"size:100"`
	ClinicURL    string    `json:"clinic_url,omitempty" gorm:"size:255"`
	GoogleMapURL string    `json:"google_map_url,omitempty" gorm:"size:255"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (c *Center) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
