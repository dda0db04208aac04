package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	apperrors "carebook/internal/errors"
)

func ptr(t time.Time) *time.Time { return &t }

func TestListFilter_Validate(t *testing.T) {
	early := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		filter  ListFilter
		wantErr bool
	}{
		{name: "empty filter"},
		{name: "ordered appointment range", filter: ListFilter{StartDate: ptr(early), EndDate: ptr(late)}},
		{name: "equal bounds allowed", filter: ListFilter{StartDate: ptr(early), EndDate: ptr(early)}},
		{name: "open-ended range", filter: ListFilter{StartDate: ptr(early)}},
		{name: "inverted appointment range", filter: ListFilter{StartDate: ptr(late), EndDate: ptr(early)}, wantErr: true},
		{name: "inverted created range", filter: ListFilter{CreatedAfter: ptr(late), CreatedBefore: ptr(early)}, wantErr: true},
		{name: "inverted updated range", filter: ListFilter{UpdatedAfter: ptr(late), UpdatedBefore: ptr(early)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.filter.Validate()
			if tt.wantErr {
				var validationErr *apperrors.ValidationError
				assert.ErrorAs(t, err, &validationErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNextDay(t *testing.T) {
	tests := []struct {
		name  string
		input time.Time
		want  time.Time
	}{
		{
			name:  "midnight rolls to next midnight",
			input: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
			want:  time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "mid-day truncates then advances",
			input: time.Date(2026, 3, 15, 17, 45, 12, 0, time.UTC),
			want:  time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "month boundary",
			input: time.Date(2026, 3, 31, 9, 0, 0, 0, time.UTC),
			want:  time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, nextDay(tt.input).Equal(tt.want))
		})
	}
}

func TestOrderColumn(t *testing.T) {
	tests := []struct {
		field string
		want  string
	}{
		{field: "name", want: "name"},
		{field: "email", want: "email"},
		{field: "appointment_date", want: "appointment_date"},
		{field: "updated_at", want: "updated_at"},
		{field: "", want: "created_at"},
		{field: "password_hash", want: "created_at"},
		{field: "created_at; DROP TABLE appointments", want: "created_at"},
	}

	for _, tt := range tests {
		t.Run("field "+tt.field, func(t *testing.T) {
			assert.Equal(t, tt.want, OrderColumn(tt.field))
		})
	}
}
