package v1

import (
	"net/http"

	"github.com/coinkeeper/backend/internal/format"
	"github.com/coinkeeper/backend/internal/httputil"
	"github.com/coinkeeper/backend/internal/models"
	"github.com/coinkeeper/backend/internal/stats"
	"github.com/gin-gonic/gin"
)

func RegisterStatsRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsStats)
	r.GET("", GetStats)
}

// StatsDisplay holds amounts pre-formatted for display.
type StatsDisplay struct {
	TotalSaved string `json:"totalSaved" example:"1,250"` // Total saved, with grouping separators
}

type Stats struct {
	stats.UserStats
	Display StatsDisplay `json:"display"`
}

type StatsResponse struct {
	Error *string `json:"error" example:"an error occurred on the server during your request"` // The error, if any occurred
	Data  *Stats  `json:"data"`                                                                // The statistics
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Stats
// @Success		204
// @Router			/v1/stats [options]
func OptionsStats(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get statistics
// @Description	Returns the statistics for this installation
// @Tags			Stats
// @Produce		json
// @Success		200	{object}	StatsResponse
// @Failure		500	{object}	StatsResponse
// @Router			/v1/stats [get]
func GetStats(c *gin.Context) {
	userStats, err := models.LoadStats()
	if err != nil {
		e := err.Error()
		c.JSON(status(err), StatsResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, StatsResponse{Data: &Stats{
		UserStats: userStats,
		Display: StatsDisplay{
			TotalSaved: format.Amount(userStats.TotalSaved),
		},
	}})
}
