package service

import (
	"regexp"
	"strings"
	"time"

	"carebook/internal/errors"
)

var contactPattern = regexp.MustCompile(`^[0-9+\-\s]{7,20}$`)

// collapseWhitespace trims the string and collapses internal runs of
// whitespace to single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// validateName normalizes and checks a requester name (2-100 chars).
func validateName(name string) (string, error) {
	name = collapseWhitespace(name)
	if len(name) < 2 || len(name) > 100 {
		return "", errors.NewValidation("name must be between 2 and 100 characters")
	}
	return name, nil
}

// validateContact checks a phone number against the accepted shape.
func validateContact(contact string) (string, error) {
	contact = strings.TrimSpace(contact)
	if !contactPattern.MatchString(contact) {
		return "", errors.NewValidation("invalid contact number format")
	}
	return contact, nil
}

// validateNotes normalizes free-text notes. Empty is allowed.
func validateNotes(notes string) (string, error) {
	notes = collapseWhitespace(notes)
	if len(notes) > 1000 {
		return "", errors.NewValidation("notes must not exceed 1000 characters")
	}
	return notes, nil
}

// validateReason normalizes a cancellation/rejection reason (3-500 chars).
func validateReason(reason string) (string, error) {
	reason = collapseWhitespace(reason)
	if len(reason) < 3 || len(reason) > 500 {
		return "", errors.NewValidation("reason must be between 3 and 500 characters")
	}
	return reason, nil
}

// validateFutureDate normalizes a date to UTC and requires it to be
// strictly in the future. Exactly "now" is rejected.
func validateFutureDate(date, now time.Time) (time.Time, error) {
	date = date.UTC()
	if !date.After(now) {
		return time.Time{}, errors.NewValidation("appointment date must be in the future")
	}
	return date, nil
}
