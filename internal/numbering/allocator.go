package numbering

import "time"

// FirstNumber is the number assigned when no certificate exists yet and
// no override was supplied.
const FirstNumber = 1

// ValidityDays is the certificate validity window.
const ValidityDays = 365

// Schedule carries the dates assigned to a new certificate. Assigned
// exactly once, at generation time, and never recomputed on
// regeneration.
type Schedule struct {
	IssueDate       time.Time
	CertificateDate time.Time
	ExpiryDate      time.Time
}

// Next computes the next certificate number. lastIssued is the highest
// number assigned so far, or 0 when none exists. An override always
// wins, even when it collides with or precedes an existing number.
func Next(lastIssued int, override *int) int {
	if override != nil {
		return *override
	}
	if lastIssued <= 0 {
		return FirstNumber
	}
	return lastIssued + 1
}

// ScheduleFor computes the date set for a certificate issued at the
// given instant. The certificate date defaults to the issue date; expiry
// is always issue + 365 days.
func ScheduleFor(issue time.Time) Schedule {
	day := issue.UTC().Truncate(24 * time.Hour)
	return Schedule{
		IssueDate:       day,
		CertificateDate: day,
		ExpiryDate:      day.AddDate(0, 0, ValidityDays),
	}
}
