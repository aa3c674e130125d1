// Package srs implements the spaced-repetition scheduling rule.
//
// The rule is a deliberately simple deterministic function of the
// previous interval and a three-valued difficulty rating. It makes no
// attempt to model memory-strength curves; there are no ease factors,
// no fuzzing, and no leech handling.
package srs

import (
	"fmt"
	"math"
	"time"
)

// Interval floors per rating, in days. The scheduler never returns an
// interval below the floor for its rating, even when the prior interval
// was zero.
const (
	hardInterval     = 1
	mediumFloor      = 2
	easyFloor        = 3
	mediumMultiplier = 2
	easyMultiplier   = 4

	// easyDefaultBase seeds the easy computation when the card has no
	// positive prior interval. A fresh card rated easy therefore jumps to
	// max(3, ceil(1.5*4)) = 6 days.
	easyDefaultBase = 1.5
)

// Schedule is the result of applying a rating to a card's prior interval:
// the new stored interval and the instant the card next becomes due.
type Schedule struct {
	Interval     int       // days until the next review, always >= 1
	NextReviewAt time.Time // now + Interval whole days
}

// NextSchedule computes the review schedule that follows a rating.
//
//   - hard resets the interval to 1 day regardless of history.
//   - medium doubles the prior interval (treating a non-positive prior
//     as 1), floored at 2 days.
//   - easy quadruples the prior interval (treating a non-positive prior
//     as 1.5), floored at 3 days.
//
// The next review time is now plus the new interval in whole days; the
// instant is not truncated to day granularity. lastInterval must be
// non-negative; the rating must be valid. This is a total function over
// valid inputs: the only failure path is an invalid rating.
func NextSchedule(lastInterval int, rating Rating, now time.Time) (Schedule, error) {
	if lastInterval < 0 {
		return Schedule{}, fmt.Errorf("last interval cannot be negative: %d", lastInterval)
	}

	var interval int
	switch rating {
	case RatingHard:
		interval = hardInterval
	case RatingMedium:
		prior := float64(lastInterval)
		if prior <= 0 {
			prior = 1
		}
		interval = maxInt(mediumFloor, int(math.Ceil(prior*mediumMultiplier)))
	case RatingEasy:
		prior := float64(lastInterval)
		if prior <= 0 {
			prior = easyDefaultBase
		}
		interval = maxInt(easyFloor, int(math.Ceil(prior*easyMultiplier)))
	default:
		return Schedule{}, fmt.Errorf("%w: %q", ErrInvalidRating, rating)
	}

	return Schedule{
		Interval:     interval,
		NextReviewAt: now.AddDate(0, 0, interval),
	}, nil
}

// EndOfDay returns the last instant of t's calendar day in UTC. It is
// the default horizon for due-card queries, so a card due at any time
// today counts as due.
func EndOfDay(t time.Time) time.Time {
	t = t.UTC()
	year, month, day := t.Date()
	return time.Date(year, month, day, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
