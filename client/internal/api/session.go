package api

import (
	"context"
	"net/http"

	clienterrors "github.com/chrissolanilla/quest-tracker/client/internal/errors"
	"github.com/chrissolanilla/quest-tracker/client/internal/types"
)

// GetMe returns the session user. A missing or expired session comes back as a
// non-2xx status, which maps to "not logged in".
func GetMe(ctx context.Context, f types.Fetcher, root string) (types.Me, error) {
	var me types.Me
	if err := getJSON(ctx, f, root+"/me", OpMe, "not logged in", &me); err != nil {
		return nil, err
	}
	return me, nil
}

// Logout ends the session. The status is not inspected; the returned error is
// only a transport fault, and callers are free to ignore it.
func Logout(ctx context.Context, f types.Fetcher, root string) error {
	_, err := send(ctx, f, root+"/auth/logout", http.MethodPost)
	return err
}

// LoginURL is where a browser starts the Asana OAuth flow.
func LoginURL(root string) string {
	return root + "/auth/asana/start"
}

// CheckHealth succeeds when the backend answers its liveness route with 2xx.
// The body ("ok") is not read.
func CheckHealth(ctx context.Context, f types.Fetcher, root string) error {
	resp, err := send(ctx, f, root+"/health", http.MethodGet)
	if err != nil {
		return err
	}
	if !resp.OK() {
		return clienterrors.NewHTTPError(OpHealth, "backend unhealthy", resp.StatusCode, resp.Body)
	}
	return nil
}
