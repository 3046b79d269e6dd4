package v1

import (
	"net/http"
	"strings"
	"time"

	"github.com/coinkeeper/backend/internal/httputil"
	"github.com/coinkeeper/backend/internal/ledger"
	"github.com/coinkeeper/backend/internal/models"
	"github.com/coinkeeper/backend/internal/stats"
	"github.com/coinkeeper/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
	"golang.org/x/exp/slices"
)

func RegisterGoalRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsGoals)
		r.GET("", GetGoals)
		r.POST("", CreateGoal)
	}
	{
		r.OPTIONS("/:id", OptionsGoalDetail)
		r.GET("/:id", GetGoal)
		r.PATCH("/:id", UpdateGoal)
		r.DELETE("/:id", DeleteGoal)
	}

	RegisterDepositRoutes(r.Group("/:id/deposits"))
}

// today returns the current calendar day. The server clock is only
// consulted at the API boundary; everything below gets the day passed in.
func today() types.Day {
	return types.DayOf(time.Now().In(time.UTC))
}

// goalIndex returns the position of the goal in the collection.
func goalIndex(goals []ledger.Goal, id uuid.UUID) (int, error) {
	for i, goal := range goals {
		if goal.ID == id {
			return i, nil
		}
	}

	return 0, models.ErrGoalNotFound
}

// goalID parses the goal ID from the request URI.
func goalID(c *gin.Context) (uuid.UUID, error) {
	return httputil.UUIDFromString(c.Param("id"))
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Goals
// @Success		204
// @Router			/v1/goals [options]
func OptionsGoals(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Goals
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID of the goal"
// @Router			/v1/goals/{id} [options]
func OptionsGoalDetail(c *gin.Context) {
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

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create goal
// @Description	Creates a new savings goal
// @Tags			Goals
// @Accept			json
// @Produce		json
// @Success		201		{object}	GoalCreateResponse
// @Failure		400		{object}	GoalCreateResponse
// @Failure		500		{object}	GoalCreateResponse
// @Param			goal	body		GoalEditable	true	"Goal"
// @Router			/v1/goals [post]
func CreateGoal(c *gin.Context) {
	var editable GoalEditable
	if err := httputil.BindData(c, &editable); err != nil {
		e := err.Error()
		c.JSON(status(err), GoalCreateResponse{Error: &e})
		return
	}

	goal, err := ledger.New(editable.Name, editable.Icon, editable.TargetAmount, editable.TargetDate, time.Now().In(time.UTC))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalCreateResponse{Error: &e})
		return
	}

	goals, err := models.LoadGoals()
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalCreateResponse{Error: &e})
		return
	}
	goals = append(goals, goal)

	userStats, err := models.LoadStats()
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalCreateResponse{Error: &e})
		return
	}
	userStats = stats.Apply(userStats, stats.GoalCreated{})

	userStats, catalog, newly, err := evaluateAchievements(userStats, time.Now().In(time.UTC))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalCreateResponse{Error: &e})
		return
	}

	if err := persist(goals, userStats, catalog); err != nil {
		e := err.Error()
		c.JSON(status(err), GoalCreateResponse{Error: &e})
		return
	}

	apiResource := newGoal(c, goal, today())
	c.JSON(http.StatusCreated, GoalCreateResponse{
		Data:            &apiResource,
		NewAchievements: newly,
	})
}

// @Summary		Get goals
// @Description	Returns a list of goals
// @Tags			Goals
// @Produce		json
// @Success		200	{object}	GoalListResponse
// @Failure		400	{object}	GoalListResponse
// @Failure		500	{object}	GoalListResponse
// @Router			/v1/goals [get]
// @Param			search		query	string	false	"Search for this text in goal names. Glob patterns are supported."
// @Param			completed	query	bool	false	"Is the goal completed?"
// @Param			offset		query	uint	false	"The offset of the first goal returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of goals to return. Defaults to 50."
func GetGoals(c *gin.Context) {
	var filter GoalQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, GoalListResponse{Error: &s})
		return
	}

	goals, err := models.LoadGoals()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GoalListResponse{Error: &s})
		return
	}

	setFields := make([]string, 0, len(c.Request.URL.Query()))
	for field := range c.Request.URL.Query() {
		setFields = append(setFields, field)
	}

	matched := make([]ledger.Goal, 0, len(goals))
	for _, goal := range goals {
		if filter.Search != "" && !glob.Glob("*"+strings.ToLower(filter.Search)+"*", strings.ToLower(goal.Name)) {
			continue
		}

		if slices.Contains(setFields, "completed") && goal.IsCompleted != filter.Completed {
			continue
		}

		matched = append(matched, goal)
	}

	total := len(matched)

	// Set the offset. Does not need checking since the default is 0
	if int(filter.Offset) < len(matched) {
		matched = matched[filter.Offset:]
	} else {
		matched = matched[:0]
	}

	// Default to 50 goals and set the limit
	limit := 50
	if slices.Contains(setFields, "limit") {
		limit = filter.Limit
	}
	if limit >= 0 && limit < len(matched) {
		matched = matched[:limit]
	}

	// Transform resources to their API representation
	day := today()
	data := make([]Goal, 0, len(matched))
	for _, goal := range matched {
		data = append(data, newGoal(c, goal, day))
	}

	c.JSON(http.StatusOK, GoalListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  total,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get goal
// @Description	Returns a specific goal
// @Tags			Goals
// @Produce		json
// @Success		200	{object}	GoalResponse
// @Failure		400	{object}	GoalResponse
// @Failure		404	{object}	GoalResponse
// @Failure		500	{object}	GoalResponse
// @Param			id	path		string	true	"ID of the goal"
// @Router			/v1/goals/{id} [get]
func GetGoal(c *gin.Context) {
	id, err := goalID(c)
	if err != nil {
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

	apiResource := newGoal(c, goals[idx], today())
	c.JSON(http.StatusOK, GoalResponse{Data: &apiResource})
}

// @Summary		Update goal
// @Description	Updates the goal metadata and target. Lowering the target below the saved amount clamps the saved amount.
// @Tags			Goals
// @Accept			json
// @Produce		json
// @Success		200		{object}	GoalResponse
// @Failure		400		{object}	GoalResponse
// @Failure		404		{object}	GoalResponse
// @Failure		500		{object}	GoalResponse
// @Param			id		path		string			true	"ID of the goal"
// @Param			goal	body		GoalEditable	true	"Goal"
// @Router			/v1/goals/{id} [patch]
func UpdateGoal(c *gin.Context) {
	id, err := goalID(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalResponse{Error: &e})
		return
	}

	var editable GoalEditable
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

	goal, err := ledger.EditParameters(goals[idx], editable.Name, editable.TargetAmount, editable.Icon, editable.TargetDate)
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

// @Summary		Delete goal
// @Description	Deletes a goal. The statistics are unaffected, money saved towards the goal stays counted.
// @Tags			Goals
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID of the goal"
// @Router			/v1/goals/{id} [delete]
func DeleteGoal(c *gin.Context) {
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

	idx, err := goalIndex(goals, id)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	goals = append(goals[:idx], goals[idx+1:]...)
	if err := models.SaveGoals(goals); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
