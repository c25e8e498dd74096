package config

import "time"

// RetentionPolicy bounds the age a remote backup may reach before the pruner
// removes it. A non-positive Days disables pruning entirely.
type RetentionPolicy struct {
	Days int
}

// Cutoff returns the oldest last-modified time that survives pruning, or the
// zero time when the policy is disabled.
func (p RetentionPolicy) Cutoff(now time.Time) time.Time {
	if p.Days <= 0 {
		return time.Time{}
	}
	return now.UTC().AddDate(0, 0, -p.Days)
}

// IsStale reports whether an object last modified at t must be deleted.
// The comparison is a strict Before: an object stamped exactly at the cutoff
// instant survives.
func (p RetentionPolicy) IsStale(t, now time.Time) bool {
	cutoff := p.Cutoff(now)
	if cutoff.IsZero() {
		return false
	}
	return t.Before(cutoff)
}
