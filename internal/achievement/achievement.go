// Package achievement evaluates the fixed achievement catalog against the
// statistics document.
package achievement

import (
	"time"

	"github.com/coinkeeper/backend/internal/stats"
	"github.com/shopspring/decimal"
)

// Type selects which statistics field drives an achievement's progress.
type Type string

const (
	TypeGoal      Type = "goal"      // driven by completed goals
	TypeStreak    Type = "streak"    // driven by the current deposit streak
	TypeAmount    Type = "amount"    // driven by the total saved amount
	TypeMilestone Type = "milestone" // driven by the number of goals created
)

// Achievement is one entry of the catalog together with its unlock state.
//
// Completed is monotone: once true it never reverts, and CompletedAt is
// stamped exactly once on that transition. Progress is recomputed on
// every evaluation and may keep changing afterwards; that is cosmetic.
type Achievement struct {
	ID           string          `json:"id" example:"first_goal"`                             // Stable identifier
	Title        string          `json:"title" example:"First step"`                          // Display title
	Description  string          `json:"description" example:"Create your first goal"`        // Display description
	Icon         string          `json:"icon" example:"🎯"`                                    // Display icon
	Type         Type            `json:"type" example:"milestone"`                            // Which statistic drives the progress
	Requirement  decimal.Decimal `json:"requirement" example:"1"`                             // Threshold the statistic has to reach
	RewardPoints int             `json:"rewardPoints" example:"10"`                           // Points granted on first completion
	Completed    bool            `json:"completed" example:"false"`                           // Whether the achievement is unlocked
	CompletedAt  *time.Time      `json:"completedAt" example:"2024-04-02T19:28:44.491514Z"`   // Time of the unlock, nil while locked
	Progress     decimal.Decimal `json:"progress" example:"0"`                                // Current value of the driving statistic
}

// progressFor returns the value of the statistic the achievement type
// selects.
func progressFor(t Type, s stats.UserStats) decimal.Decimal {
	switch t {
	case TypeGoal:
		return decimal.NewFromInt(int64(s.CompletedGoals))
	case TypeStreak:
		return decimal.NewFromInt(int64(s.CurrentStreak))
	case TypeAmount:
		return s.TotalSaved
	case TypeMilestone:
		return decimal.NewFromInt(int64(s.TotalGoals))
	}

	return decimal.Zero
}

// Evaluate recomputes the whole catalog against the statistics snapshot.
//
// It returns the updated catalog and the subset of achievements that
// transitioned from locked to unlocked in this call. The "newly" set is
// computed against the catalog passed in, so evaluating twice against the
// same snapshot yields an empty set the second time. CompletedAt of
// already completed achievements is never touched.
func Evaluate(catalog []Achievement, s stats.UserStats, now time.Time) (all, newly []Achievement) {
	all = make([]Achievement, 0, len(catalog))

	for _, a := range catalog {
		a.Progress = progressFor(a.Type, s)

		if !a.Completed && a.Progress.GreaterThanOrEqual(a.Requirement) {
			a.Completed = true
			completedAt := now
			a.CompletedAt = &completedAt
			newly = append(newly, a)
		}

		all = append(all, a)
	}

	return all, newly
}
