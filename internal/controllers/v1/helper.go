package v1

import (
	"time"

	"github.com/coinkeeper/backend/internal/achievement"
	"github.com/coinkeeper/backend/internal/ledger"
	"github.com/coinkeeper/backend/internal/models"
	"github.com/coinkeeper/backend/internal/stats"
)

// evaluateAchievements re-checks the achievement catalog against the
// statistics and credits the reward points for every achievement that
// unlocked just now.
func evaluateAchievements(s stats.UserStats, now time.Time) (stats.UserStats, []achievement.Achievement, []achievement.Achievement, error) {
	catalog, err := models.LoadAchievements()
	if err != nil {
		return s, nil, nil, err
	}

	catalog, newly := achievement.Evaluate(catalog, s, now)
	for _, unlocked := range newly {
		s = stats.Apply(s, stats.AchievementUnlocked{Points: unlocked.RewardPoints})
	}

	return s, catalog, newly, nil
}

// persist writes all three state documents back to the store.
func persist(goals []ledger.Goal, s stats.UserStats, catalog []achievement.Achievement) error {
	if err := models.SaveGoals(goals); err != nil {
		return err
	}

	if err := models.SaveStats(s); err != nil {
		return err
	}

	return models.SaveAchievements(catalog)
}
