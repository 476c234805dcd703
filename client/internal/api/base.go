package api

import (
	"context"
	"fmt"
	"net/http"

	clienterrors "github.com/chrissolanilla/quest-tracker/client/internal/errors"
	"github.com/chrissolanilla/quest-tracker/client/internal/types"
)

// Operation names double as metric labels.
const (
	OpLeaderboard  = "leaderboard"
	OpMe           = "me"
	OpLogout       = "logout"
	OpProjects     = "projects"
	OpProjectTasks = "project_tasks"
	OpSyncMe       = "sync_me"
	OpQuests       = "quests"
	OpHealth       = "health"
)

// send performs the one attempt every operation makes. A nil error means the
// fetcher produced a response; its status has not been checked yet.
func send(ctx context.Context, f types.Fetcher, url, method string) (*types.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	resp, err := f.Fetch(ctx, url, types.RequestOptions{
		Method:      method,
		Credentials: types.CredentialsInclude,
	})
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, fmt.Errorf("%s %s: fetcher returned no response", method, url)
	}
	return resp, nil
}

// getJSON issues a GET and decodes a 2xx body into out.
func getJSON(ctx context.Context, f types.Fetcher, url, op, failMsg string, out any) error {
	resp, err := send(ctx, f, url, http.MethodGet)
	if err != nil {
		return err
	}
	if !resp.OK() {
		return clienterrors.NewHTTPError(op, failMsg, resp.StatusCode, resp.Body)
	}
	return resp.JSON(out)
}

// post issues a bodiless POST; any success body is discarded.
func post(ctx context.Context, f types.Fetcher, url, op, failMsg string) error {
	resp, err := send(ctx, f, url, http.MethodPost)
	if err != nil {
		return err
	}
	if !resp.OK() {
		return clienterrors.NewHTTPError(op, failMsg, resp.StatusCode, resp.Body)
	}
	return nil
}
