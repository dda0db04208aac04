package repository

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"carebook/internal/errors"
	"carebook/internal/model"
)

// ListFilter narrows an appointment listing. All fields are optional
// and AND-combined. Date bounds carry day precision; the *Before /
// EndDate bounds include their full calendar day.
type ListFilter struct {
	Status  model.AppointmentStatus
	Name    string
	Contact string
	Email   string
	// Search matches name, contact or email as a case-insensitive
	// substring, OR-combined.
	Search string

	// Range on appointment_date.
	StartDate *time.Time
	EndDate   *time.Time
	// Range on created_at.
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
	// Range on updated_at.
	UpdatedAfter  *time.Time
	UpdatedBefore *time.Time
}

// Validate rejects inverted date ranges before any store access.
func (f ListFilter) Validate() error {
	if f.StartDate != nil && f.EndDate != nil && f.StartDate.After(*f.EndDate) {
		return errors.NewValidation("start_date must not be after end_date")
	}
	if f.CreatedAfter != nil && f.CreatedBefore != nil && f.CreatedAfter.After(*f.CreatedBefore) {
		return errors.NewValidation("created_after must not be after created_before")
	}
	if f.UpdatedAfter != nil && f.UpdatedBefore != nil && f.UpdatedAfter.After(*f.UpdatedBefore) {
		return errors.NewValidation("updated_after must not be after updated_before")
	}
	return nil
}

// scope translates the filter into WHERE clauses. Used for both the
// count and the page query so the two round-trips see the same
// predicate.
func (f ListFilter) scope() func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if f.Status != "" {
			tx = tx.Where("status = ?", f.Status)
		}
		if f.Name != "" {
			tx = tx.Where("name = ?", f.Name)
		}
		if f.Contact != "" {
			tx = tx.Where("contact = ?", f.Contact)
		}
		if f.Email != "" {
			tx = tx.Where("email = ?", f.Email)
		}
		if f.StartDate != nil {
			tx = tx.Where("appointment_date >= ?", *f.StartDate)
		}
		if f.EndDate != nil {
			tx = tx.Where("appointment_date < ?", nextDay(*f.EndDate))
		}
		if f.CreatedAfter != nil {
			tx = tx.Where("created_at >= ?", *f.CreatedAfter)
		}
		if f.CreatedBefore != nil {
			tx = tx.Where("created_at < ?", nextDay(*f.CreatedBefore))
		}
		if f.UpdatedAfter != nil {
			tx = tx.Where("updated_at >= ?", *f.UpdatedAfter)
		}
		if f.UpdatedBefore != nil {
			tx = tx.Where("updated_at < ?", nextDay(*f.UpdatedBefore))
		}
		if f.Search != "" {
			term := "%" + strings.ToLower(f.Search) + "%"
			tx = tx.Where(
				"LOWER(name) LIKE ? OR LOWER(contact) LIKE ? OR LOWER(email) LIKE ?",
				term, term, term,
			)
		}
		return tx
	}
}

// nextDay returns the start of the calendar day after t, so that an
// exclusive upper bound still includes the whole of t's day.
func nextDay(t time.Time) time.Time {
	return t.Truncate(24 * time.Hour).AddDate(0, 0, 1)
}

// orderColumns whitelists sortable fields. Anything else falls back
// to created_at.
var orderColumns = map[string]string{
	"name":             "name",
	"email":            "email",
	"contact":          "contact",
	"status":           "status",
	"appointment_date": "appointment_date",
	"created_at":       "created_at",
	"updated_at":       "updated_at",
}

// OrderColumn resolves a caller-specified ordering field to a column
// name, falling back to created_at for unrecognized fields.
func OrderColumn(field string) string {
	if col, ok := orderColumns[field]; ok {
		return col
	}
	return "created_at"
}
