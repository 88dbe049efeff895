package cmd

import (
	"fmt"
	"io"

	"github.com/MakeNowJust/heredoc"
	"github.com/charmbracelet/flick/internal/db"
	"github.com/charmbracelet/flick/internal/remote"
	"github.com/spf13/cobra"
)

var actCmd = &cobra.Command{
	Use:   "act <post-id> <action>",
	Short: "Perform an account action on a post",
	Long: heredoc.Doc(`
		Perform an account action on a cached post without starting the
		interface. Available actions: upvote, downvote, unvote, save, unsave,
		hide, unhide, report, mark_read.
	`),
	Example: heredoc.Doc(`
		# Save a post listed by flick list
		flick act 3f1c0a9e save
	`),
	Args: cobra.ExactArgs(2),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
		if len(args) != 1 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		var names []cobra.Completion
		for _, a := range remote.Actions() {
			names = append(names, a.String())
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		action, err := remote.ParseAction(args[1])
		if err != nil {
			return err
		}

		a, err := setupApp(cmd)
		if err != nil {
			return err
		}
		defer a.Shutdown()

		p, err := a.Store.Post(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if !a.Mutations.Authenticated() {
			return fmt.Errorf("%s: not authenticated with the backend", action)
		}
		if _, err := a.Mutations.Do(cmd.Context(), p, action); err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", action.Past(), p.Title)
		return err
	},
}

var historyCmd = &cobra.Command{
	Use:   "history <post-id>",
	Short: "Show the actions performed on a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setupApp(cmd)
		if err != nil {
			return err
		}
		defer a.Shutdown()

		entries, err := a.Store.History(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return writeHistory(cmd.OutOrStdout(), entries)
	},
}

func writeHistory(w io.Writer, entries []db.LoggedAction) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No actions.")
		return err
	}
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%s  %s\n", e.At.Format("2006-01-02 15:04:05"), e.Action); err != nil {
			return err
		}
	}
	return nil
}
