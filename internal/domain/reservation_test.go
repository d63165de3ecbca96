package domain

import (
	"testing"
	"time"
)

func TestReservationStatus_Transitions(t *testing.T) {
	t.Parallel()

	cases := []struct {
		from, to ReservationStatus
		want     bool
	}{
		{ReservationStatusPending, ReservationStatusConfirmed, true},
		{ReservationStatusPending, ReservationStatusCancelled, true},
		{ReservationStatusPending, ReservationStatusCompleted, false},
		{ReservationStatusConfirmed, ReservationStatusCancelled, true},
		{ReservationStatusConfirmed, ReservationStatusCompleted, true},
		{ReservationStatusConfirmed, ReservationStatusPending, false},
		{ReservationStatusCancelled, ReservationStatusConfirmed, false},
		{ReservationStatusCancelled, ReservationStatusPending, false},
		{ReservationStatusCompleted, ReservationStatusCancelled, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Fatalf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.want, got)
		}
	}
}

func TestReservation_IsActive(t *testing.T) {
	t.Parallel()

	for status, want := range map[ReservationStatus]bool{
		ReservationStatusPending:   true,
		ReservationStatusConfirmed: true,
		ReservationStatusCancelled: false,
		ReservationStatusCompleted: false,
	} {
		r := Reservation{Status: status}
		if got := r.IsActive(); got != want {
			t.Fatalf("%s: expected active=%v, got %v", status, want, got)
		}
	}
}

func TestReservation_Nights(t *testing.T) {
	t.Parallel()

	r := Reservation{
		CheckIn:  NewDate(2025, time.January, 1),
		CheckOut: NewDate(2025, time.January, 4),
	}
	if got := r.Nights(); got != 3 {
		t.Fatalf("expected 3 nights, got %d", got)
	}
}
