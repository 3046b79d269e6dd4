package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/coinkeeper/backend/internal/controllers/v1"
	"github.com/coinkeeper/backend/internal/models"
	"github.com/coinkeeper/backend/internal/types"
	"github.com/coinkeeper/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestGoal(t *testing.T, editable v1.GoalEditable, expectedStatus ...int) v1.GoalCreateResponse {
	if editable.Name == "" {
		editable.Name = uuid.NewString()
	}

	if editable.TargetAmount.IsZero() {
		editable.TargetAmount = decimal.NewFromInt(1000)
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/goals", editable)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.GoalCreateResponse
	test.DecodeResponse(t, &r, &response)

	return response
}

func (suite *TestSuiteStandard) TestGoalsCreate() {
	targetDate := types.NewDay(2027, 12, 24)

	response := createTestGoal(suite.T(), v1.GoalEditable{
		Name:         "New TV",
		Icon:         "📺",
		TargetAmount: decimal.NewFromInt(750),
		TargetDate:   &targetDate,
	})

	require.NotNil(suite.T(), response.Data)
	goal := *response.Data

	assert.Equal(suite.T(), "New TV", goal.Name)
	assert.Equal(suite.T(), "📺", goal.Icon)
	assert.True(suite.T(), goal.CurrentAmount.IsZero(), "a new goal must start without savings")
	assert.True(suite.T(), goal.RemainingAmount.Equal(decimal.NewFromInt(750)))
	assert.False(suite.T(), goal.IsCompleted)
	assert.Empty(suite.T(), goal.History)
	assert.Equal(suite.T(), fmt.Sprintf("http://example.com/v1/goals/%s", goal.ID), goal.Links.Self)
	assert.Equal(suite.T(), fmt.Sprintf("http://example.com/v1/goals/%s/deposits", goal.ID), goal.Links.Deposits)

	// The first goal unlocks the "First step" achievement
	require.Len(suite.T(), response.NewAchievements, 1)
	assert.Equal(suite.T(), "first_goal", response.NewAchievements[0].ID)
}

func (suite *TestSuiteStandard) TestGoalsCreateInvalid() {
	tests := []struct {
		name string
		body any
	}{
		{"Broken JSON", `{ "name": "Not valid JSON`},
		{"Zero target amount", v1.GoalEditable{Name: "No target"}},
		{"Negative target amount", v1.GoalEditable{Name: "Negative", TargetAmount: decimal.NewFromInt(-100)}},
		{"Empty body", ""},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/goals", tt.body)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

			var response v1.GoalCreateResponse
			test.DecodeResponse(t, &r, &response)
			assert.NotNil(t, response.Error)
		})
	}
}

func (suite *TestSuiteStandard) TestGoalsGetAll() {
	_ = createTestGoal(suite.T(), v1.GoalEditable{Name: "Vacation"})
	_ = createTestGoal(suite.T(), v1.GoalEditable{Name: "New laptop"})
	_ = createTestGoal(suite.T(), v1.GoalEditable{Name: "Emergency fund"})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/goals", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.GoalListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Len(suite.T(), response.Data, 3)
	require.NotNil(suite.T(), response.Pagination)
	assert.Equal(suite.T(), 3, response.Pagination.Total)
	assert.Equal(suite.T(), 50, response.Pagination.Limit)
}

func (suite *TestSuiteStandard) TestGoalsGetFiltered() {
	_ = createTestGoal(suite.T(), v1.GoalEditable{Name: "Summer vacation"})
	_ = createTestGoal(suite.T(), v1.GoalEditable{Name: "Winter vacation"})
	completed := createTestGoal(suite.T(), v1.GoalEditable{Name: "New phone", TargetAmount: decimal.NewFromInt(100)})

	// Complete one goal
	r := test.Request(suite.T(), http.MethodPost, completed.Data.Links.Deposits, v1.DepositEditable{Amount: decimal.NewFromInt(100)})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	tests := []struct {
		name  string
		query string
		count int
	}{
		{"Search matches substring", "search=vacation", 2},
		{"Search is case insensitive", "search=VACATION", 2},
		{"Search with no matches", "search=castle", 0},
		{"Only completed", "completed=true", 1},
		{"Only uncompleted", "completed=false", 2},
		{"Limit", "limit=1", 1},
		{"Limit of zero", "limit=0", 0},
		{"Offset past the end", "offset=10", 0},
		{"Offset with limit", "offset=1&limit=1", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/goals?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.GoalListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.count)
		})
	}
}

func (suite *TestSuiteStandard) TestGoalsGetSingle() {
	goal := createTestGoal(suite.T(), v1.GoalEditable{})

	tests := []struct {
		name   string
		id     string
		status int
		method string
	}{
		{"GET Existing goal", goal.Data.ID.String(), http.StatusOK, http.MethodGet},
		{"GET ID nil", uuid.Nil.String(), http.StatusNotFound, http.MethodGet},
		{"GET No goal with this ID", uuid.New().String(), http.StatusNotFound, http.MethodGet},
		{"GET Invalid ID (negative number)", "-56", http.StatusBadRequest, http.MethodGet},
		{"GET Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodGet},
		{"PATCH Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodPatch},
		{"DELETE Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodDelete},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, tt.method, fmt.Sprintf("http://example.com/v1/goals/%s", tt.id), "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestGoalsUpdate() {
	goal := createTestGoal(suite.T(), v1.GoalEditable{Name: "Old name", TargetAmount: decimal.NewFromInt(500)})

	r := test.Request(suite.T(), http.MethodPatch, goal.Data.Links.Self, v1.GoalEditable{
		Name:         "New name",
		Icon:         "🚗",
		TargetAmount: decimal.NewFromInt(800),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.GoalResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Equal(suite.T(), "New name", response.Data.Name)
	assert.Equal(suite.T(), "🚗", response.Data.Icon)
	assert.True(suite.T(), response.Data.TargetAmount.Equal(decimal.NewFromInt(800)))
}

// TestGoalsUpdateClampsSavings verifies that lowering the target below the
// saved amount clamps the savings and completes the goal.
func (suite *TestSuiteStandard) TestGoalsUpdateClampsSavings() {
	goal := createTestGoal(suite.T(), v1.GoalEditable{Name: "Clamped", TargetAmount: decimal.NewFromInt(1000)})

	r := test.Request(suite.T(), http.MethodPost, goal.Data.Links.Deposits, v1.DepositEditable{Amount: decimal.NewFromInt(600)})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.T(), http.MethodPatch, goal.Data.Links.Self, v1.GoalEditable{
		Name:         "Clamped",
		TargetAmount: decimal.NewFromInt(500),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.GoalResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.True(suite.T(), response.Data.CurrentAmount.Equal(decimal.NewFromInt(500)), "current amount must be clamped to the new target")
	assert.True(suite.T(), response.Data.IsCompleted)
}

func (suite *TestSuiteStandard) TestGoalsUpdateInvalid() {
	goal := createTestGoal(suite.T(), v1.GoalEditable{})

	r := test.Request(suite.T(), http.MethodPatch, goal.Data.Links.Self, v1.GoalEditable{Name: "No target"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestGoalsDelete() {
	goal := createTestGoal(suite.T(), v1.GoalEditable{})

	r := test.Request(suite.T(), http.MethodDelete, goal.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, goal.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

// TestGoalsDeleteKeepsStats verifies that deleting a goal does not remove
// the money already counted in the statistics.
func (suite *TestSuiteStandard) TestGoalsDeleteKeepsStats() {
	goal := createTestGoal(suite.T(), v1.GoalEditable{})

	r := test.Request(suite.T(), http.MethodPost, goal.Data.Links.Deposits, v1.DepositEditable{Amount: decimal.NewFromInt(100)})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.T(), http.MethodDelete, goal.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/stats", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.StatsResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), response.Data.TotalSaved.Equal(decimal.NewFromInt(100)))
	assert.Equal(suite.T(), 1, response.Data.TotalGoals)
}

func (suite *TestSuiteStandard) TestGoalsOptions() {
	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"No goal with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Goal exists", createTestGoal(suite.T(), v1.GoalEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/goals", tt.id)
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

// TestGoalsDBClosed verifies that errors are processed correctly when
// the database is closed.
func (suite *TestSuiteStandard) TestGoalsDBClosed() {
	tests := []struct {
		name string             // Name of the test
		test func(t *testing.T) // Code to run
	}{
		{
			"Creation fails",
			func(t *testing.T) {
				createTestGoal(t, v1.GoalEditable{}, http.StatusInternalServerError)
			},
		},
		{
			"GET fails",
			func(t *testing.T) {
				r := test.Request(t, http.MethodGet, "http://example.com/v1/goals", "")
				test.AssertHTTPStatus(t, &r, http.StatusInternalServerError)

				var response v1.GoalListResponse
				test.DecodeResponse(t, &r, &response)
				assert.Contains(t, *response.Error, models.ErrGeneral.Error())
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			suite.CloseDB()

			tt.test(t)
		})
	}
}
