//go:build !integration

package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"interpreter-booking/internal/domain"
	"interpreter-booking/internal/domain/model"
	"interpreter-booking/internal/domain/ports/adapter"
	"interpreter-booking/internal/usecase"
)

func TestNightWindow(t *testing.T) {
	// 22:00 to 09:00, wrapping past midnight.
	w := usecase.NightWindow{Start: 22 * time.Hour, End: 9 * time.Hour}

	at := func(h, m int) time.Time {
		return time.Date(2025, 3, 10, h, m, 0, 0, time.UTC)
	}

	for _, tc := range []struct {
		t    time.Time
		want bool
	}{
		{at(23, 0), true},
		{at(3, 30), true},
		{at(8, 59), true},
		{at(9, 0), false},
		{at(12, 0), false},
		{at(21, 59), false},
		{at(22, 0), true},
	} {
		if got := w.Contains(tc.t); got != tc.want {
			t.Errorf("Contains(%v) = %v, want %v", tc.t.Format("15:04"), got, tc.want)
		}
	}

	// Before the morning end: same day 09:00.
	next := w.NextBusinessTime(at(3, 30))
	if !next.Equal(at(9, 0)) {
		t.Errorf("expected 09:00 same day, got %v", next)
	}
	// After it: next morning.
	next = w.NextBusinessTime(at(23, 0))
	if !next.Equal(at(9, 0).Add(24 * time.Hour)) {
		t.Errorf("expected 09:00 next day, got %v", next)
	}
}

func TestBroadcastSuitableJob(t *testing.T) {
	ctx := context.Background()

	job := &model.Job{
		ID: "job-1", UserID: "cust-1", FromLanguageID: "lang-ar",
		JobType: model.JobTypePaid, Status: model.JobStatusPending,
		Due: time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC), Duration: 60,
		CustomerPhoneType: true,
	}

	candidate := func(f *fixture, id string, meta model.UserMeta) *usecase.Candidate {
		u := &model.User{ID: id, Email: id + "@translator.test", Role: model.RoleTranslator, Enabled: true}
		f.users.Add(u, &meta, "lang-ar")
		return &usecase.Candidate{User: u, Meta: &meta, LanguageIDs: []string{"lang-ar"}}
	}

	t.Run("night pushes defer to morning unless the translator wants them", func(t *testing.T) {
		lateEvening := time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC)
		f := newFixture(lateEvening)

		cands := []*usecase.Candidate{
			candidate(f, "tr-default", model.UserMeta{}),
			candidate(f, "tr-night-ok", model.UserMeta{NotGetNighttime: true}),
			candidate(f, "tr-optout", model.UserMeta{NotGetNotification: true}),
		}
		f.notifier.BroadcastSuitableJob(ctx, job, cands)

		if f.push.Count() != 2 {
			t.Fatalf("expected an immediate and a delayed batch, got %d", f.push.Count())
		}
		now := f.push.Delivered[0]
		if now.SendAfter != nil {
			t.Error("expected the first batch delivered immediately")
		}
		if len(now.Recipients) != 1 || now.Recipients[0].UserID != "tr-night-ok" {
			t.Errorf("expected only tr-night-ok in the immediate batch, got %v", now.Recipients)
		}
		delayed := f.push.Delivered[1]
		if delayed.SendAfter == nil {
			t.Fatal("expected the second batch deferred")
		}
		morning := time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC)
		if !delayed.SendAfter.Equal(morning) {
			t.Errorf("expected delivery at %v, got %v", morning, *delayed.SendAfter)
		}
		if len(delayed.Recipients) != 1 || delayed.Recipients[0].UserID != "tr-default" {
			t.Errorf("expected only tr-default deferred, got %v", delayed.Recipients)
		}
	})

	t.Run("outside the night window nobody is deferred", func(t *testing.T) {
		f := newFixture(noon)
		cands := []*usecase.Candidate{
			candidate(f, "tr-1", model.UserMeta{}),
		}
		f.notifier.BroadcastSuitableJob(ctx, job, cands)

		if f.push.Count() != 1 {
			t.Fatalf("expected one batch, got %d", f.push.Count())
		}
		if f.push.Delivered[0].SendAfter != nil {
			t.Error("expected immediate delivery at midday")
		}
	})

	t.Run("emergency opt-outs are skipped for immediate jobs", func(t *testing.T) {
		f := newFixture(noon)
		urgent := *job
		urgent.Immediate = true

		cands := []*usecase.Candidate{
			candidate(f, "tr-1", model.UserMeta{}),
			candidate(f, "tr-no-emergency", model.UserMeta{NotGetEmergency: true}),
		}
		f.notifier.BroadcastSuitableJob(ctx, &urgent, cands)

		if f.push.Count() != 1 {
			t.Fatalf("expected one batch, got %d", f.push.Count())
		}
		n := f.push.Delivered[0]
		if len(n.Recipients) != 1 || n.Recipients[0].UserID != "tr-1" {
			t.Errorf("expected the opt-out excluded, got %v", n.Recipients)
		}
		if n.Sound.Android != "emergency_booking" {
			t.Errorf("expected the emergency sound, got %q", n.Sound.Android)
		}
	})
}

func TestSessionStartReminder(t *testing.T) {
	ctx := context.Background()

	t.Run("reminder is handed over with a deferred send time", func(t *testing.T) {
		f := newFixture(noon)
		customer := f.seedCustomer("cust-1")
		job := &model.Job{
			ID: "job-1", UserID: "cust-1", FromLanguageID: "lang-ar",
			Due: noon.Add(2 * time.Hour), Duration: 60, CustomerPhoneType: true,
		}

		f.notifier.SessionStartReminder(ctx, customer, job)
		if f.push.Count() != 1 {
			t.Fatalf("expected one push, got %d", f.push.Count())
		}
		n := f.push.Delivered[0]
		if n.Type != adapter.PushSessionStartRemind {
			t.Errorf("expected session reminder type, got %q", n.Type)
		}
		if n.SendAfter == nil || !n.SendAfter.Equal(job.Due.Add(-10*time.Minute)) {
			t.Errorf("expected send time 10 minutes before due, got %v", n.SendAfter)
		}
	})

	t.Run("imminent sessions are reminded right away", func(t *testing.T) {
		f := newFixture(noon)
		customer := f.seedCustomer("cust-1")
		job := &model.Job{
			ID: "job-1", UserID: "cust-1", FromLanguageID: "lang-ar",
			Due: noon.Add(5 * time.Minute), Duration: 30, CustomerPhoneType: true,
		}

		f.notifier.SessionStartReminder(ctx, customer, job)
		if f.push.Count() != 1 {
			t.Fatalf("expected one push, got %d", f.push.Count())
		}
		if f.push.Delivered[0].SendAfter != nil {
			t.Error("expected immediate delivery when the lead time has passed")
		}
	})
}

func TestSMSBroadcast(t *testing.T) {
	ctx := context.Background()

	newCandidates := func(f *fixture) []*usecase.Candidate {
		tr := f.seedTranslator("tr-1", "lang-ar")
		return []*usecase.Candidate{{User: tr, Meta: &model.UserMeta{}, LanguageIDs: []string{"lang-ar"}}}
	}

	base := model.Job{
		ID: "job-1", UserID: "cust-1", FromLanguageID: "lang-ar",
		Due: time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC), Duration: 90,
		Town: "Uppsala",
	}

	t.Run("physical-only jobs use the on-site template", func(t *testing.T) {
		f := newFixture(noon)
		f.seedCustomer("cust-1")
		job := base
		job.CustomerPhysicalType = true

		n, err := f.notifier.SMSBroadcast(ctx, &job, newCandidates(f))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if n != 1 || len(f.sms.Sent) != 1 {
			t.Fatalf("expected one text, got %d", len(f.sms.Sent))
		}
		want := f.catalog.T("sms.physical_job", "12.03.2025", "10:00", "Uppsala", "01h 30min", "job-1")
		if f.sms.Sent[0].Message != want {
			t.Errorf("expected %q, got %q", want, f.sms.Sent[0].Message)
		}
	})

	t.Run("phone jobs use the phone template even when also physical", func(t *testing.T) {
		f := newFixture(noon)
		f.seedCustomer("cust-1")
		job := base
		job.CustomerPhoneType = true
		job.CustomerPhysicalType = true

		_, err := f.notifier.SMSBroadcast(ctx, &job, newCandidates(f))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		want := f.catalog.T("sms.phone_job", "12.03.2025", "10:00", "01h 30min", "job-1")
		if f.sms.Sent[0].Message != want {
			t.Errorf("expected %q, got %q", want, f.sms.Sent[0].Message)
		}
	})

	t.Run("a job with no contact mode is a validation failure", func(t *testing.T) {
		f := newFixture(noon)
		f.seedCustomer("cust-1")
		job := base

		_, err := f.notifier.SMSBroadcast(ctx, &job, newCandidates(f))
		if !errors.Is(err, domain.ErrNoContactMode) {
			t.Fatalf("expected ErrNoContactMode, got %v", err)
		}
		if len(f.sms.Sent) != 0 {
			t.Error("expected no texts sent")
		}
	})
}
