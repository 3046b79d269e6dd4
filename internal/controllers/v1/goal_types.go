package v1

import (
	"fmt"

	"github.com/coinkeeper/backend/internal/achievement"
	"github.com/coinkeeper/backend/internal/ledger"
	"github.com/coinkeeper/backend/internal/models"
	"github.com/coinkeeper/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type GoalEditable struct {
	Name         string          `json:"name" example:"New TV" default:""`                                         // Name of the goal
	Icon         string          `json:"icon" example:"💰" default:"💰"`                                             // Icon shown next to the goal
	TargetAmount decimal.Decimal `json:"targetAmount" example:"750" minimum:"0.00000001" multipleOf:"0.00000001"` // How much money should be saved for this goal?
	TargetDate   *types.Day      `json:"targetDate" example:"2024-12-24"`                                          // Optional day the goal should be reached by
}

type GoalLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/goals/438cc6c0-9baf-49fd-a75a-d76bd5cab19c"`              // The goal itself
	Deposits string `json:"deposits" example:"https://example.com/api/v1/goals/438cc6c0-9baf-49fd-a75a-d76bd5cab19c/deposits"` // Deposits for this goal
}

type Goal struct {
	ledger.Goal
	RemainingAmount decimal.Decimal `json:"remainingAmount" example:"630"` // How much is still missing
	Progress        float64         `json:"progress" example:"0.16"`       // Savings progress in [0, 1]
	DaysLeft        *int            `json:"daysLeft" example:"45"`         // Days until the target date, nil without one
	Links           GoalLinks       `json:"links"`
}

// newGoal returns the API representation of a goal. The days left are
// evaluated against the day passed in since they change at midnight.
func newGoal(c *gin.Context, model ledger.Goal, today types.Day) Goal {
	url := c.GetString(string(models.ContextURL))

	goal := Goal{
		Goal:            model,
		RemainingAmount: model.RemainingAmount(),
		Progress:        model.Progress(),
		Links: GoalLinks{
			Self:     fmt.Sprintf("%s/v1/goals/%s", url, model.ID),
			Deposits: fmt.Sprintf("%s/v1/goals/%s/deposits", url, model.ID),
		},
	}

	if days, ok := model.DaysLeft(today); ok {
		goal.DaysLeft = &days
	}

	return goal
}

type GoalListResponse struct {
	Data       []Goal      `json:"data"`                                                          // List of goals
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type GoalResponse struct {
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *Goal   `json:"data"`                                                          // The goal
}

type GoalCreateResponse struct {
	Error           *string                   `json:"error" example:"goal target amounts must be larger than zero"` // The error, if any occurred
	Data            *Goal                     `json:"data"`                                                         // The created goal
	NewAchievements []achievement.Achievement `json:"newAchievements"`                                              // Achievements unlocked by creating the goal
}

type GoalQueryFilter struct {
	Search    string `form:"search"`    // Match goal names against this glob pattern
	Completed bool   `form:"completed"` // Only return completed (true) or uncompleted (false) goals
	Offset    uint   `form:"offset"`    // The offset of the first goal returned. Defaults to 0.
	Limit     int    `form:"limit"`     // Maximum number of goals to return. Defaults to 50.
}
