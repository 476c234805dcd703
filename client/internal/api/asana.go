package api

import (
	"context"
	"fmt"

	"github.com/chrissolanilla/quest-tracker/client/internal/types"
)

// ListProjects returns the projects of the session user's workspace.
func ListProjects(ctx context.Context, f types.Fetcher, root string) ([]types.Project, error) {
	var projects []types.Project
	if err := getJSON(ctx, f, root+"/asana/projects", OpProjects, "failed", &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// ListProjectTasks returns every task of one project. projectGID is placed in
// the path as-is.
func ListProjectTasks(ctx context.Context, f types.Fetcher, root, projectGID string) ([]types.Task, error) {
	url := fmt.Sprintf("%s/asana/projects/%s/tasks", root, projectGID)
	var tasks []types.Task
	if err := getJSON(ctx, f, url, OpProjectTasks, "failed", &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// SyncMe asks the backend to recompute the session user's points from Asana.
func SyncMe(ctx context.Context, f types.Fetcher, root string) error {
	return post(ctx, f, root+"/asana/sync/me", OpSyncMe, "sync failed")
}
