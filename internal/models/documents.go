package models

import (
	"github.com/coinkeeper/backend/internal/achievement"
	"github.com/coinkeeper/backend/internal/ledger"
	"github.com/coinkeeper/backend/internal/stats"
)

// LoadGoals returns the goal collection.
//
// Documents written by older versions of the app may carry a nil history
// or a current amount that drifted from it, so both are normalized here:
// the core packages assume well-typed, range-consistent input and do not
// re-validate.
func LoadGoals() ([]ledger.Goal, error) {
	var goals []ledger.Goal
	found, err := Get(KeyGoals, &goals)
	if err != nil {
		return nil, err
	}
	if !found {
		return []ledger.Goal{}, nil
	}

	for i, goal := range goals {
		if goal.History == nil {
			goals[i].History = []ledger.Entry{}
		}
		goals[i].IsCompleted = goal.CurrentAmount.GreaterThanOrEqual(goal.TargetAmount)
	}

	return goals, nil
}

// SaveGoals persists the goal collection.
func SaveGoals(goals []ledger.Goal) error {
	return Put(KeyGoals, goals)
}

// LoadStats returns the statistics document, seeding and persisting the
// zeroed document on first use.
func LoadStats() (stats.UserStats, error) {
	var s stats.UserStats
	found, err := Get(KeyStats, &s)
	if err != nil {
		return stats.UserStats{}, err
	}
	if !found {
		s = stats.New()
		if err := Put(KeyStats, s); err != nil {
			return stats.UserStats{}, err
		}
	}

	return s, nil
}

// SaveStats persists the statistics document.
func SaveStats(s stats.UserStats) error {
	return Put(KeyStats, s)
}

// LoadAchievements returns the achievement catalog with its persisted
// unlock state.
//
// The catalog itself is configuration: the stored document only
// contributes the per-entry unlock state, matched by ID. Entries added to
// the catalog since the document was written show up locked, removed ones
// disappear.
func LoadAchievements() ([]achievement.Achievement, error) {
	var stored []achievement.Achievement
	found, err := Get(KeyAchievements, &stored)
	if err != nil {
		return nil, err
	}

	catalog := achievement.Catalog()
	if !found {
		if err := Put(KeyAchievements, catalog); err != nil {
			return nil, err
		}
		return catalog, nil
	}

	state := make(map[string]achievement.Achievement, len(stored))
	for _, a := range stored {
		state[a.ID] = a
	}

	for i, a := range catalog {
		if s, ok := state[a.ID]; ok {
			catalog[i].Completed = s.Completed
			catalog[i].CompletedAt = s.CompletedAt
			catalog[i].Progress = s.Progress
		}
	}

	return catalog, nil
}

// SaveAchievements persists the achievement unlock state.
func SaveAchievements(catalog []achievement.Achievement) error {
	return Put(KeyAchievements, catalog)
}
