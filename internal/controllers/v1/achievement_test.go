package v1_test

import (
	"net/http"

	v1 "github.com/coinkeeper/backend/internal/controllers/v1"
	"github.com/coinkeeper/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestAchievementsGetAll() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/achievements", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.AchievementListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.Len(suite.T(), response.Data, 13)
	for _, a := range response.Data {
		assert.False(suite.T(), a.Completed, "achievement %q must start locked", a.ID)
		assert.Nil(suite.T(), a.CompletedAt)
	}
}

// TestAchievementsUnlockPersisted verifies that unlocks survive across
// requests and that progress is kept current.
func (suite *TestSuiteStandard) TestAchievementsUnlockPersisted() {
	_ = createTestGoal(suite.T(), v1.GoalEditable{TargetAmount: decimal.NewFromInt(500)})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/achievements", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.AchievementListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	var found bool
	for _, a := range response.Data {
		if a.ID == "first_goal" {
			found = true
			assert.True(suite.T(), a.Completed)
			assert.NotNil(suite.T(), a.CompletedAt)
			assert.True(suite.T(), a.Progress.Equal(decimal.NewFromInt(1)))
		}
	}
	assert.True(suite.T(), found)
}

func (suite *TestSuiteStandard) TestAchievementsOptions() {
	r := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/achievements", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "GET", r.Header().Get("allow"))
}
