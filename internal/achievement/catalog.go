package achievement

import "github.com/shopspring/decimal"

// Catalog returns the fixed achievement catalog in its locked state.
//
// The catalog is configuration, not runtime data: entries are only ever
// added here, and their IDs must stay stable since unlock state is
// persisted by ID.
func Catalog() []Achievement {
	return []Achievement{
		{
			ID:           "first_goal",
			Title:        "First step",
			Description:  "Create your first savings goal",
			Icon:         "🎯",
			Type:         TypeMilestone,
			Requirement:  decimal.NewFromInt(1),
			RewardPoints: 10,
		},
		{
			ID:           "goal_master",
			Title:        "Goal master",
			Description:  "Create 5 savings goals",
			Icon:         "🏆",
			Type:         TypeMilestone,
			Requirement:  decimal.NewFromInt(5),
			RewardPoints: 50,
		},
		{
			ID:           "goal_champion",
			Title:        "Goal champion",
			Description:  "Create 10 savings goals",
			Icon:         "👑",
			Type:         TypeMilestone,
			Requirement:  decimal.NewFromInt(10),
			RewardPoints: 100,
		},
		{
			ID:           "first_completion",
			Title:        "First win",
			Description:  "Reach your first goal",
			Icon:         "⭐",
			Type:         TypeGoal,
			Requirement:  decimal.NewFromInt(1),
			RewardPoints: 25,
		},
		{
			ID:           "perfectionist",
			Title:        "Perfectionist",
			Description:  "Reach 5 goals",
			Icon:         "✨",
			Type:         TypeGoal,
			Requirement:  decimal.NewFromInt(5),
			RewardPoints: 75,
		},
		{
			ID:           "streak_3",
			Title:        "Consistency",
			Description:  "Put money aside 3 days in a row",
			Icon:         "🔥",
			Type:         TypeStreak,
			Requirement:  decimal.NewFromInt(3),
			RewardPoints: 15,
		},
		{
			ID:           "streak_7",
			Title:        "A week of discipline",
			Description:  "Put money aside 7 days in a row",
			Icon:         "💪",
			Type:         TypeStreak,
			Requirement:  decimal.NewFromInt(7),
			RewardPoints: 35,
		},
		{
			ID:           "streak_30",
			Title:        "A month of habit",
			Description:  "Put money aside 30 days in a row",
			Icon:         "🏅",
			Type:         TypeStreak,
			Requirement:  decimal.NewFromInt(30),
			RewardPoints: 150,
		},
		{
			ID:           "savings_10000",
			Title:        "Savings novice",
			Description:  "Save a total of 10,000",
			Icon:         "💰",
			Type:         TypeAmount,
			Requirement:  decimal.NewFromInt(10000),
			RewardPoints: 20,
		},
		{
			ID:           "savings_50000",
			Title:        "Seasoned saver",
			Description:  "Save a total of 50,000",
			Icon:         "💎",
			Type:         TypeAmount,
			Requirement:  decimal.NewFromInt(50000),
			RewardPoints: 60,
		},
		{
			ID:           "savings_100000",
			Title:        "Financial guru",
			Description:  "Save a total of 100,000",
			Icon:         "👑",
			Type:         TypeAmount,
			Requirement:  decimal.NewFromInt(100000),
			RewardPoints: 100,
		},
		{
			ID:           "early_bird",
			Title:        "Early bird",
			Description:  "Reach a goal 3 days before its deadline",
			Icon:         "🐦",
			Type:         TypeGoal,
			Requirement:  decimal.NewFromInt(1),
			RewardPoints: 30,
		},
		{
			ID:           "weekly_planner",
			Title:        "Weekly planner",
			Description:  "Create a goal for every week of the month",
			Icon:         "📅",
			Type:         TypeMilestone,
			Requirement:  decimal.NewFromInt(4),
			RewardPoints: 40,
		},
	}
}
