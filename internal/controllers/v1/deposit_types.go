package v1

import (
	"github.com/coinkeeper/backend/internal/achievement"
	"github.com/coinkeeper/backend/internal/stats"
	"github.com/coinkeeper/backend/internal/types"
	"github.com/shopspring/decimal"
)

type DepositEditable struct {
	Amount decimal.Decimal `json:"amount" example:"50" minimum:"0.00000001" multipleOf:"0.00000001"` // Amount to add to the goal
	Date   *types.Day      `json:"date" example:"2024-04-02"`                                        // Day the deposit is attributed to. Defaults to today.
}

type DepositEntryEditable struct {
	Amount decimal.Decimal `json:"amount" example:"50" minimum:"0.00000001" multipleOf:"0.00000001"` // The corrected amount
}

// Deposit reports everything a single deposit changed.
type Deposit struct {
	Goal            Goal                      `json:"goal"`                   // The goal after the deposit
	Applied         bool                      `json:"applied" example:"true"` // Whether any money was added
	Amount          decimal.Decimal           `json:"amount" example:"50"`    // The amount actually added, after clamping
	GoalCompleted   bool                      `json:"goalCompleted"`          // Whether this deposit completed the goal
	Stats           stats.UserStats           `json:"stats"`                  // The statistics after the deposit
	NewAchievements []achievement.Achievement `json:"newAchievements"`        // Achievements unlocked by this deposit
}

type DepositResponse struct {
	Error *string  `json:"error" example:"deposit amounts must be larger than zero"` // The error, if any occurred
	Data  *Deposit `json:"data"`                                                     // The deposit outcome
}
