package v1

import (
	"net/http"
	"time"

	"github.com/coinkeeper/backend/internal/httputil"
	"github.com/coinkeeper/backend/internal/ledger"
	"github.com/coinkeeper/backend/internal/models"
	"github.com/coinkeeper/backend/internal/stats"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func RegisterDepositRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsDeposits)
		r.POST("", CreateDeposit)
	}
	{
		r.OPTIONS("/:entryId", OptionsDepositDetail)
		r.PATCH("/:entryId", UpdateDeposit)
		r.DELETE("/:entryId", DeleteDeposit)
	}
}

// entryID parses the deposit entry ID from the request URI.
func entryID(c *gin.Context) (uuid.UUID, error) {
	return httputil.UUIDFromString(c.Param("entryId"))
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Deposits
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID of the goal"
// @Router			/v1/goals/{id}/deposits [options]
func OptionsDeposits(c *gin.Context) {
	id, err := goalID(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	goals, err := models.LoadGoals()
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if _, err := goalIndex(goals, id); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Deposits
// @Success		204
// @Failure		400		{object}	httpError
// @Failure		404		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			id		path		string	true	"ID of the goal"
// @Param			entryId	path		string	true	"ID of the deposit"
// @Router			/v1/goals/{id}/deposits/{entryId} [options]
func OptionsDepositDetail(c *gin.Context) {
	id, err := goalID(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	eID, err := entryID(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	goals, err := models.LoadGoals()
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	idx, err := goalIndex(goals, id)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if _, err := ledger.DeleteEntry(goals[idx], eID); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsPatchDelete(c)
}

// @Summary		Add deposit
// @Description	Adds money to a goal. The amount is clamped so the goal never exceeds its target; when nothing remains to be saved, the deposit is reported back as not applied.
// @Tags			Deposits
// @Accept			json
// @Produce		json
// @Success		200		{object}	DepositResponse
// @Failure		400		{object}	DepositResponse
// @Failure		404		{object}	DepositResponse
// @Failure		500		{object}	DepositResponse
// @Param			id		path		string			true	"ID of the goal"
// @Param			deposit	body		DepositEditable	true	"Deposit"
// @Router			/v1/goals/{id}/deposits [post]
func CreateDeposit(c *gin.Context) {
	id, err := goalID(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DepositResponse{Error: &e})
		return
	}

	var editable DepositEditable
	if err := httputil.BindData(c, &editable); err != nil {
		e := err.Error()
		c.JSON(status(err), DepositResponse{Error: &e})
		return
	}

	day := today()
	if editable.Date != nil {
		day = *editable.Date
	}

	goals, err := models.LoadGoals()
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DepositResponse{Error: &e})
		return
	}

	idx, err := goalIndex(goals, id)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DepositResponse{Error: &e})
		return
	}

	goal, result := ledger.Deposit(goals[idx], editable.Amount, day)

	userStats, err := models.LoadStats()
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DepositResponse{Error: &e})
		return
	}

	if !result.Applied {
		// Nothing was added. The goal, statistics and achievements stay
		// as they are, the response just reports the no-op.
		c.JSON(http.StatusOK, DepositResponse{Data: &Deposit{
			Goal:    newGoal(c, goal, today()),
			Applied: false,
			Amount:  result.Amount,
			Stats:   userStats,
		}})
		return
	}

	goals[idx] = goal

	userStats = stats.Apply(userStats, stats.DepositApplied{Amount: result.Amount, Day: day})
	if result.JustCompleted {
		userStats = stats.Apply(userStats, stats.GoalCompleted{})
	}

	userStats, catalog, newly, err := evaluateAchievements(userStats, time.Now().In(time.UTC))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DepositResponse{Error: &e})
		return
	}

	if err := persist(goals, userStats, catalog); err != nil {
		e := err.Error()
		c.JSON(status(err), DepositResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, DepositResponse{Data: &Deposit{
		Goal:            newGoal(c, goal, today()),
		Applied:         true,
		Amount:          result.Amount,
		GoalCompleted:   result.JustCompleted,
		Stats:           userStats,
		NewAchievements: newly,
	}})
}

// @Summary		Update deposit
// @Description	Corrects the amount of a recorded deposit. An edit that would push the goal past its target is rejected.
// @Tags			Deposits
// @Accept			json
// @Produce		json
// @Success		200		{object}	GoalResponse
// @Failure		400		{object}	GoalResponse
// @Failure		404		{object}	GoalResponse
// @Failure		500		{object}	GoalResponse
// @Param			id		path		string					true	"ID of the goal"
// @Param			entryId	path		string					true	"ID of the deposit"
// @Param			deposit	body		DepositEntryEditable	true	"Deposit"
// @Router			/v1/goals/{id}/deposits/{entryId} [patch]
func UpdateDeposit(c *gin.Context) {
	id, err := goalID(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalResponse{Error: &e})
		return
	}

	eID, err := entryID(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalResponse{Error: &e})
		return
	}

	var editable DepositEntryEditable
	if err := httputil.BindData(c, &editable); err != nil {
		e := err.Error()
		c.JSON(status(err), GoalResponse{Error: &e})
		return
	}

	goals, err := models.LoadGoals()
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalResponse{Error: &e})
		return
	}

	idx, err := goalIndex(goals, id)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalResponse{Error: &e})
		return
	}

	goal, err := ledger.EditEntry(goals[idx], eID, editable.Amount)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalResponse{Error: &e})
		return
	}
	goals[idx] = goal

	if err := models.SaveGoals(goals); err != nil {
		e := err.Error()
		c.JSON(status(err), GoalResponse{Error: &e})
		return
	}

	apiResource := newGoal(c, goal, today())
	c.JSON(http.StatusOK, GoalResponse{Data: &apiResource})
}

// @Summary		Delete deposit
// @Description	Removes a recorded deposit and subtracts its amount from the goal.
// @Tags			Deposits
// @Success		204
// @Failure		400		{object}	httpError
// @Failure		404		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			id		path		string	true	"ID of the goal"
// @Param			entryId	path		string	true	"ID of the deposit"
// @Router			/v1/goals/{id}/deposits/{entryId} [delete]
func DeleteDeposit(c *gin.Context) {
	id, err := goalID(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	eID, err := entryID(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	goals, err := models.LoadGoals()
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	idx, err := goalIndex(goals, id)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	goal, err := ledger.DeleteEntry(goals[idx], eID)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}
	goals[idx] = goal

	if err := models.SaveGoals(goals); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
