package api

import (
	"context"

	"github.com/chrissolanilla/quest-tracker/client/internal/types"
)

// GetLeaderboard fetches the ranked users.
func GetLeaderboard(ctx context.Context, f types.Fetcher, root string) ([]types.LeaderboardRow, error) {
	var rows []types.LeaderboardRow
	if err := getJSON(ctx, f, root+"/leaderboard", OpLeaderboard, "failed to load leaderboard", &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ListQuests fetches the quest list.
func ListQuests(ctx context.Context, f types.Fetcher, root string) ([]types.Quest, error) {
	var quests []types.Quest
	if err := getJSON(ctx, f, root+"/quests", OpQuests, "failed to load quests", &quests); err != nil {
		return nil, err
	}
	return quests, nil
}
