// Package stats maintains the per-installation statistics document.
//
// All mutation goes through a single reducer, Apply, which consumes a
// closed set of events. Callers translate ledger outcomes into events and
// persist the returned document.
package stats

import (
	"github.com/coinkeeper/backend/internal/types"
	"github.com/shopspring/decimal"
)

// UserStats aggregates activity across all goals. There is one instance
// per installation.
type UserStats struct {
	TotalSaved       decimal.Decimal `json:"totalSaved" example:"1250"`   // Sum of all applied deposits
	CompletedGoals   int             `json:"completedGoals" example:"2"`  // Number of goals that have been reached
	TotalGoals       int             `json:"totalGoals" example:"5"`      // Number of goals ever created
	CurrentStreak    int             `json:"currentStreak" example:"3"`   // Consecutive days with at least one deposit
	LongestStreak    int             `json:"longestStreak" example:"14"`  // Longest streak ever reached
	LastActivityDate *types.Day      `json:"lastActivityDate"`            // Day of the most recent deposit, nil before the first one
	TotalPoints      int             `json:"totalPoints" example:"85"`    // Reward points from completed achievements
}

// New returns the zeroed statistics document for first use.
func New() UserStats {
	return UserStats{TotalSaved: decimal.Zero}
}

// Event is a statistics-relevant occurrence. The set of implementations
// is closed.
type Event interface {
	isEvent()
}

// DepositApplied is emitted for every deposit the ledger actually applied,
// with the clamped amount.
type DepositApplied struct {
	Amount decimal.Decimal
	Day    types.Day
}

// GoalCreated is emitted once per goal creation.
type GoalCreated struct{}

// GoalCompleted is emitted when a deposit completes a goal. Callers must
// emit it at most once per goal, driven by the ledger's
// completion-transition flag; the reducer has no guard against
// double-counting.
type GoalCompleted struct{}

// AchievementUnlocked is emitted once per newly completed achievement.
type AchievementUnlocked struct {
	Points int
}

func (DepositApplied) isEvent()      {}
func (GoalCreated) isEvent()         {}
func (GoalCompleted) isEvent()       {}
func (AchievementUnlocked) isEvent() {}

// Apply returns the statistics with the event applied.
func Apply(s UserStats, event Event) UserStats {
	switch e := event.(type) {
	case DepositApplied:
		s.TotalSaved = s.TotalSaved.Add(e.Amount)
		s = applyStreak(s, e.Day)

	case GoalCreated:
		s.TotalGoals++

	case GoalCompleted:
		s.CompletedGoals++

	case AchievementUnlocked:
		s.TotalPoints += e.Points
	}

	return s
}

// applyStreak updates the deposit streak for a deposit on the given day.
//
//   - same day as the last activity: no change
//   - exactly one day later: the streak continues
//   - more than one day later, or first activity: the streak restarts at 1
//   - earlier than the last activity: out-of-order dates (clock skew,
//     backdated deposits) leave the streak and last activity untouched
func applyStreak(s UserStats, day types.Day) UserStats {
	if s.LastActivityDate == nil {
		s.CurrentStreak = 1
	} else {
		switch diff := s.LastActivityDate.DaysUntil(day); {
		case diff < 0:
			return s
		case diff == 0:
			// a second deposit on the same day
		case diff == 1:
			s.CurrentStreak++
		default:
			s.CurrentStreak = 1
		}
	}

	s.LastActivityDate = &day
	s.LongestStreak = max(s.LongestStreak, s.CurrentStreak)
	return s
}
