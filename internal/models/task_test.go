package models

import (
	"testing"
	"time"
)

func TestTaskTimeLeft(t *testing.T) {
	task := Task{DueDate: day(2026, time.March, 15)}

	if got := task.TimeLeft(day(2026, time.March, 10)); got != 5 {
		t.Fatalf("expected 5 days left, got %d", got)
	}
	if got := task.TimeLeft(day(2026, time.March, 18)); got != 0 {
		t.Fatalf("expected overdue task to report zero, got %d", got)
	}
}

func TestTaskTimeElapsedPercentage(t *testing.T) {
	task := Task{
		CreatedAt: time.Date(2026, time.March, 1, 17, 45, 0, 0, time.UTC),
		DueDate:   day(2026, time.March, 5),
	}

	cases := map[time.Time]int{
		day(2026, time.February, 27): 0,
		day(2026, time.March, 1):     0,
		day(2026, time.March, 2):     25,
		day(2026, time.March, 5):     100,
	}
	for today, want := range cases {
		if got := task.TimeElapsedPercentage(today); got != want {
			t.Fatalf("TimeElapsedPercentage(%s) = %d, want %d", today.Format(time.DateOnly), got, want)
		}
	}

	task.IsComplete = true
	if got := task.TimeElapsedPercentage(day(2026, time.March, 2)); got != 100 {
		t.Fatalf("expected completed task at 100, got %d", got)
	}

	sameDay := Task{CreatedAt: day(2026, time.March, 1), DueDate: day(2026, time.March, 1)}
	if got := sameDay.TimeElapsedPercentage(day(2026, time.March, 1)); got != 100 {
		t.Fatalf("expected task due on creation day at 100, got %d", got)
	}
}

func TestDateOnlyKeepsCalendarDay(t *testing.T) {
	location := time.FixedZone("UTC+9", 9*60*60)
	local := time.Date(2026, time.March, 10, 1, 30, 0, 0, location)

	if got := DateOnly(local); !got.Equal(day(2026, time.March, 10)) {
		t.Fatalf("expected the local calendar day, got %v", got)
	}
	if got := DaysBetween(day(2026, time.March, 10), day(2026, time.March, 3)); got != -7 {
		t.Fatalf("expected negative span, got %d", got)
	}
}

func TestIdentityDisplayName(t *testing.T) {
	identity := Identity{Template: IdentityTemplate{Name: "Scholar"}}
	if got := identity.DisplayName(); got != "Scholar" {
		t.Fatalf("expected template name fallback, got %q", got)
	}

	identity.CustomName = "Night Reader"
	if got := identity.DisplayName(); got != "Night Reader" {
		t.Fatalf("expected custom name, got %q", got)
	}
}
