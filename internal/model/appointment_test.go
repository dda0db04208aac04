package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppointmentStatus_CanTransition(t *testing.T) {
	all := []AppointmentStatus{
		AppointmentStatusPending,
		AppointmentStatusUpcoming,
		AppointmentStatusCompleted,
		AppointmentStatusCancelled,
		AppointmentStatusRejected,
	}

	allowed := map[AppointmentStatus]map[AppointmentStatus]bool{
		AppointmentStatusPending: {
			AppointmentStatusUpcoming: true,
			AppointmentStatusRejected: true,
		},
		AppointmentStatusUpcoming: {
			AppointmentStatusCompleted: true,
			AppointmentStatusCancelled: true,
		},
	}

	for _, from := range all {
		for _, to := range all {
			want := allowed[from][to]
			assert.Equal(t, want, from.CanTransition(to), "transition %s -> %s", from, to)
		}
	}
}

func TestAppointmentStatus_IsTerminal(t *testing.T) {
	assert.False(t, AppointmentStatusPending.IsTerminal())
	assert.False(t, AppointmentStatusUpcoming.IsTerminal())
	assert.True(t, AppointmentStatusCompleted.IsTerminal())
	assert.True(t, AppointmentStatusCancelled.IsTerminal())
	assert.True(t, AppointmentStatusRejected.IsTerminal())
}
