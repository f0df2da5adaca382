//go:build !integration

package model_test

import (
	"testing"
	"time"

	"interpreter-booking/internal/domain/model"
)

func TestParseJobStatus(t *testing.T) {
	for _, s := range []string{
		"pending", "assigned", "started", "completed",
		"withdrawbefore24", "withdrawafter24", "timedout", "not_carried_out_customer",
	} {
		if _, err := model.ParseJobStatus(s); err != nil {
			t.Errorf("ParseJobStatus(%q) unexpected error: %v", s, err)
		}
	}
	if _, err := model.ParseJobStatus("cancelled"); err == nil {
		t.Error("expected an error for an unknown status")
	}
}

func TestJobActive(t *testing.T) {
	active := []model.JobStatus{model.JobStatusPending, model.JobStatusAssigned, model.JobStatusStarted}
	terminal := []model.JobStatus{
		model.JobStatusCompleted, model.JobStatusWithdrawBefore24,
		model.JobStatusWithdrawAfter24, model.JobStatusTimedOut,
		model.JobStatusNotCarriedOutByCustomer,
	}
	for _, s := range active {
		if !(&model.Job{Status: s}).Active() {
			t.Errorf("expected %q active", s)
		}
	}
	for _, s := range terminal {
		if (&model.Job{Status: s}).Active() {
			t.Errorf("expected %q inactive", s)
		}
	}
}

func TestSessionInterval(t *testing.T) {
	due := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)
	for _, tc := range []struct {
		completed time.Time
		want      string
	}{
		{due.Add(90 * time.Minute), "1:30:0"},
		{due.Add(45*time.Second + 5*time.Minute), "0:5:45"},
		{due, "0:0:0"},
		// A completion before due still yields a positive interval.
		{due.Add(-30 * time.Minute), "0:30:0"},
	} {
		if got := model.SessionInterval(due, tc.completed); got != tc.want {
			t.Errorf("SessionInterval(due, %v) = %q, want %q", tc.completed, got, tc.want)
		}
	}
}

func TestWillExpireAt(t *testing.T) {
	created := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	for _, tc := range []struct {
		name string
		due  time.Time
		want time.Time
	}{
		{"near bookings expire at due", created.Add(time.Hour), created.Add(time.Hour)},
		{"same-day bookings get 90 minutes", created.Add(12 * time.Hour), created.Add(90 * time.Minute)},
		{"bookings within three days get 16 hours", created.Add(48 * time.Hour), created.Add(16 * time.Hour)},
		{"distant bookings expire two days before due", created.Add(10 * 24 * time.Hour), created.Add(10*24*time.Hour - 48*time.Hour)},
	} {
		if got := model.WillExpireAt(tc.due, created); !got.Equal(tc.want) {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestModerationFlagsSet(t *testing.T) {
	var flags model.ModerationFlags
	for _, f := range []model.ModerationFlag{
		model.FlagFlagged, model.FlagManuallyHandled, model.FlagByAdmin,
		model.FlagIgnore, model.FlagIgnoreExpired, model.FlagIgnoreFlagged,
	} {
		if err := flags.Set(f, true); err != nil {
			t.Errorf("Set(%q) unexpected error: %v", f, err)
		}
	}
	if !flags.Flagged || !flags.ManuallyHandled || !flags.ByAdmin ||
		!flags.Ignore || !flags.IgnoreExpired || !flags.IgnoreFlagged {
		t.Errorf("expected all flags set, got %+v", flags)
	}
	if err := flags.Set("unknown", true); err == nil {
		t.Error("expected an error for an unknown flag")
	}
}
