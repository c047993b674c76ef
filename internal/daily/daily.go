// internal/daily/daily.go
//
// Calendar-day seeds for the daily puzzle.
// Everyone asking on the same UTC day gets the same seed, hence the same puzzle.

package daily

import "time"

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Seed returns the daily seed for t. A non-empty salt namespaces deployments
// so two servers with different salts publish different dailies.
func Seed(t time.Time, salt string) string {
	if salt == "" {
		return DateKey(t)
	}
	return salt + ":" + DateKey(t)
}
