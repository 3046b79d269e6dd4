package v1

import (
	"net/http"

	"github.com/coinkeeper/backend/internal/achievement"
	"github.com/coinkeeper/backend/internal/httputil"
	"github.com/coinkeeper/backend/internal/models"
	"github.com/gin-gonic/gin"
)

func RegisterAchievementRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsAchievements)
	r.GET("", GetAchievements)
}

type AchievementListResponse struct {
	Error *string                   `json:"error" example:"an error occurred on the server during your request"` // The error, if any occurred
	Data  []achievement.Achievement `json:"data"`                                                                // The achievement catalog with its current state
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Achievements
// @Success		204
// @Router			/v1/achievements [options]
func OptionsAchievements(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get achievements
// @Description	Returns all achievements with their completion state and progress
// @Tags			Achievements
// @Produce		json
// @Success		200	{object}	AchievementListResponse
// @Failure		500	{object}	AchievementListResponse
// @Router			/v1/achievements [get]
func GetAchievements(c *gin.Context) {
	catalog, err := models.LoadAchievements()
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AchievementListResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, AchievementListResponse{Data: catalog})
}
