package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/chrissolanilla/quest-tracker/client"
	"github.com/chrissolanilla/quest-tracker/internal/config"
	"github.com/chrissolanilla/quest-tracker/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		logFailure(err)
		os.Exit(1)
	}
}

// logFailure logs err, adding operation and HTTP status for backend failures.
func logFailure(err error) {
	ev := log.Error().Err(err)
	if re, ok := client.AsRequestError(err); ok {
		ev = ev.Str("detail", re.Detail()).Int("status", re.StatusCode)
	}
	ev.Msg("command failed")
}

type rootOptions struct {
	apiBase   string
	apiPrefix string
	session   string
	debug     bool
	asJSON    bool

	cfg *config.Config
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	o := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "questboard",
		Short:         "Command line access to the quest-tracker backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			// Flags win over QUESTBOARD_* variables; validate only the merged result.
			flags := cmd.Flags()
			if flags.Changed("api-base") {
				cfg.APIBase = o.apiBase
			}
			if flags.Changed("api-prefix") {
				cfg.APIPrefix = o.apiPrefix
			}
			if flags.Changed("session") {
				cfg.Session = o.session
			}
			if err := cfg.ResolveDefaults(); err != nil {
				return err
			}

			lvl, _ := cfg.Level()
			if o.debug {
				lvl = zerolog.DebugLevel
			}
			logger.InitConsole(lvl)
			log.Debug().Str("api_base", cfg.APIBase).Str("api_prefix", cfg.APIPrefix).Msg("cli configured")

			o.cfg = cfg
			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&o.apiBase, "api-base", client.DefaultBaseURL, "Base address of the dev proxy or backend (env QUESTBOARD_API_BASE)")
	pf.StringVar(&o.apiPrefix, "api-prefix", client.DefaultAPIPrefix, `Path prefix before every route; "" for the backend itself (env QUESTBOARD_API_PREFIX)`)
	pf.StringVar(&o.session, "session", "", "Value of the sid session cookie (env QUESTBOARD_SESSION)")
	pf.BoolVarP(&o.debug, "debug", "d", false, "Enable debug logging and HTTP dumps")
	pf.BoolVar(&o.asJSON, "json", false, "Print raw JSON instead of tables")

	rootCmd.AddCommand(newLeaderboardCmd(o))
	rootCmd.AddCommand(newQuestsCmd(o))
	rootCmd.AddCommand(newMeCmd(o))
	rootCmd.AddCommand(newLogoutCmd(o))
	rootCmd.AddCommand(newLoginURLCmd(o))
	rootCmd.AddCommand(newHealthCmd(o))
	rootCmd.AddCommand(newProjectsCmd(o))
	rootCmd.AddCommand(newTasksCmd(o))
	rootCmd.AddCommand(newSyncCmd(o))

	return rootCmd
}

func (o *rootOptions) newClient() (*client.Client, error) {
	opts := []client.Option{
		client.WithHTTPTimeout(o.cfg.HTTPTimeout),
		client.WithAPIPrefix(o.cfg.APIPrefix),
		client.WithDebugLogging(o.debug),
	}
	if o.cfg.Session != "" {
		opts = append(opts, client.WithSessionCookie(o.cfg.Session))
	}
	return client.New(o.cfg.APIBase, opts...)
}
