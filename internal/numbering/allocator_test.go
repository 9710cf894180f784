package numbering

import (
	"testing"
	"time"
)

func TestNextDefaultsToSeed(t *testing.T) {
	if got := Next(0, nil); got != FirstNumber {
		t.Errorf("first number: got %d, want %d", got, FirstNumber)
	}
}

func TestNextIncrements(t *testing.T) {
	if got := Next(41, nil); got != 42 {
		t.Errorf("got %d, want 42", got)
	}
}

func TestNextOverrideAlwaysWins(t *testing.T) {
	override := 500
	if got := Next(0, &override); got != 500 {
		t.Errorf("override with empty sequence: got %d, want 500", got)
	}
	// Even when smaller than the last issued number
	if got := Next(900, &override); got != 500 {
		t.Errorf("override below max: got %d, want 500", got)
	}
}

func TestScheduleForDates(t *testing.T) {
	issue := time.Date(2026, 3, 1, 14, 30, 0, 0, time.UTC)
	a := ScheduleFor(issue)

	wantIssue := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	if !a.IssueDate.Equal(wantIssue) {
		t.Errorf("issue date: got %v, want %v", a.IssueDate, wantIssue)
	}
	if !a.CertificateDate.Equal(a.IssueDate) {
		t.Errorf("certificate date should default to issue date, got %v", a.CertificateDate)
	}
	if d := a.ExpiryDate.Sub(a.IssueDate); d != 365*24*time.Hour {
		t.Errorf("expiry window: got %v, want %v", d, 365*24*time.Hour)
	}
}

func TestSequenceStrictlyIncreasing(t *testing.T) {
	last := 0
	for i := 0; i < 5; i++ {
		n := Next(last, nil)
		if n <= last {
			t.Fatalf("sequence not strictly increasing: %d after %d", n, last)
		}
		last = n
	}
	if last != 5 {
		t.Errorf("after 5 allocations: got %d, want 5", last)
	}
}
