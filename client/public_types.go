package client

import "github.com/chrissolanilla/quest-tracker/client/internal/types"

// Public type aliases so SDK consumers can import only the client package.
type (
	// Request seam
	Fetcher         = types.Fetcher
	FetchFunc       = types.FetchFunc
	RequestOptions  = types.RequestOptions
	Response        = types.Response
	CredentialsMode = types.CredentialsMode

	// Backend payloads
	LeaderboardRow = types.LeaderboardRow
	Me             = types.Me
	Project        = types.Project
	Task           = types.Task
	CustomField    = types.CustomField
	Quest          = types.Quest
)

const (
	CredentialsInclude = types.CredentialsInclude
	CredentialsOmit    = types.CredentialsOmit
)

// Errors re-exported in errors.go
