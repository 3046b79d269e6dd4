package v1_test

import (
	"net/http"

	v1 "github.com/coinkeeper/backend/internal/controllers/v1"
	"github.com/coinkeeper/backend/internal/models"
	"github.com/coinkeeper/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestStatsEmpty() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/stats", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.StatsResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.NotNil(suite.T(), response.Data)
	assert.True(suite.T(), response.Data.TotalSaved.IsZero())
	assert.Equal(suite.T(), 0, response.Data.TotalGoals)
	assert.Nil(suite.T(), response.Data.LastActivityDate)
	assert.Equal(suite.T(), "0", response.Data.Display.TotalSaved)
}

func (suite *TestSuiteStandard) TestStatsAfterActivity() {
	goal := createTestGoal(suite.T(), v1.GoalEditable{TargetAmount: decimal.NewFromInt(20000)})
	_ = createTestDeposit(suite.T(), goal, v1.DepositEditable{Amount: decimal.NewFromInt(12500)})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/stats", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.StatsResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.True(suite.T(), response.Data.TotalSaved.Equal(decimal.NewFromInt(12500)))
	assert.Equal(suite.T(), 1, response.Data.TotalGoals)
	assert.Equal(suite.T(), 1, response.Data.CurrentStreak)
	assert.NotNil(suite.T(), response.Data.LastActivityDate)

	// Amounts are formatted with grouping separators for display
	assert.Equal(suite.T(), "12,500", response.Data.Display.TotalSaved)

	// first_goal (10) and savings_10000 (20)
	assert.Equal(suite.T(), 30, response.Data.TotalPoints)
}

func (suite *TestSuiteStandard) TestStatsOptions() {
	r := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/stats", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "GET", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestStatsDBClosed() {
	suite.CloseDB()

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/stats", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)

	var response v1.StatsResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Error)
	assert.Contains(suite.T(), *response.Error, models.ErrGeneral.Error())
}
