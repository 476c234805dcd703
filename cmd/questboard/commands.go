package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/chrissolanilla/quest-tracker/client"
)

func newLeaderboardCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "leaderboard",
		Short: "Show users ranked by points",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := o.newClient()
			if err != nil {
				return err
			}
			start := time.Now()
			rows, err := c.Leaderboard(cmd.Context())
			if err != nil {
				return err
			}
			log.Debug().Int("rows", len(rows)).Dur("elapsed", time.Since(start)).Msg("leaderboard loaded")

			if o.asJSON {
				return printJSON(cmd, rows)
			}
			t := newTable(cmd, "RANK", "NAME", "POINTS", "USER ID")
			for i, r := range rows {
				t.row(strconv.Itoa(i+1), r.Name(), formatPoints(r.Points()), r.UserID())
			}
			return t.flush()
		},
	}
}

func newQuestsCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "quests",
		Short: "List quests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := o.newClient()
			if err != nil {
				return err
			}
			quests, err := c.ListQuests(cmd.Context())
			if err != nil {
				return err
			}
			if o.asJSON {
				return printJSON(cmd, quests)
			}
			t := newTable(cmd, "ID", "NAME", "DIFFICULTY", "DONE", "COMPLETED BY")
			for _, q := range quests {
				t.row(q.ID(), q.Name(), q.Difficulty(), yesNo(q.Completed()), q.CompletedBy())
			}
			return t.flush()
		},
	}
}

func newMeCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the user behind the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := o.newClient()
			if err != nil {
				return err
			}
			me, err := c.Me(cmd.Context())
			if client.IsNotLoggedIn(err) {
				return fmt.Errorf("%w: sign in at %s and pass the sid cookie with --session", err, c.LoginURL())
			}
			if err != nil {
				return err
			}
			if o.asJSON {
				return printJSON(cmd, me)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", me.Name(), me.UserID())
			return nil
		},
	}
}

func newLogoutCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := o.newClient()
			if err != nil {
				return err
			}
			c.Logout(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newLoginURLCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "login-url",
		Short: "Print the address that starts Asana sign-in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := o.newClient()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), c.LoginURL())
			return nil
		},
	}
}

func newHealthCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the backend is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := o.newClient()
			if err != nil {
				return err
			}
			if err := c.Health(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}

func newProjectsCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List Asana projects visible to the session user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := o.newClient()
			if err != nil {
				return err
			}
			projects, err := c.ListProjects(cmd.Context())
			if err != nil {
				return err
			}
			if o.asJSON {
				return printJSON(cmd, projects)
			}
			t := newTable(cmd, "GID", "NAME")
			for _, p := range projects {
				t.row(p.Gid(), p.Name())
			}
			return t.flush()
		},
	}
}

func newTasksCmd(o *rootOptions) *cobra.Command {
	var fields []string

	cmd := &cobra.Command{
		Use:   "tasks <project-gid>",
		Short: "List the tasks of an Asana project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := o.newClient()
			if err != nil {
				return err
			}
			tasks, err := c.ListProjectTasks(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if o.asJSON {
				return printJSON(cmd, tasks)
			}

			headers := []string{"GID", "NAME", "DONE"}
			for _, f := range fields {
				headers = append(headers, strings.ToUpper(f))
			}
			t := newTable(cmd, headers...)
			for _, task := range tasks {
				cells := []string{task.Gid(), task.Name(), yesNo(task.Completed())}
				for _, f := range fields {
					v, ok := task.CustomField(f)
					if !ok {
						v = "-"
					}
					cells = append(cells, v)
				}
				t.row(cells...)
			}
			return t.flush()
		},
	}

	cmd.Flags().StringSliceVar(&fields, "field", nil, "Custom field to show as a column (repeatable)")
	return cmd
}

func newSyncCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Recompute points for the session user from Asana",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := o.newClient()
			if err != nil {
				return err
			}
			if err := c.SyncMe(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Sync complete")
			return nil
		},
	}
}

func formatPoints(p float64) string { return strconv.FormatFloat(p, 'f', -1, 64) }

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
