package cmd

import (
	"fmt"
	"io"

	"github.com/MakeNowJust/heredoc"
	"github.com/charmbracelet/flick/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	configCmd.AddCommand(configGetCmd, configSetCmd, configPathCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Read and change the configuration",
	Example: heredoc.Doc(`
		# Bind upvote to a rightward swipe
		flick config set swipe.right upvote

		# Show the action of a leftward swipe
		flick config get swipe.left
	`),
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return configGet(cmd.OutOrStdout(), cfg.Path(), args[0])
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a configuration value",
	Long: heredoc.Doc(`
		Change a configuration value. Values that are valid JSON (numbers,
		booleans, arrays) are stored as such, anything else as a string.
	`),
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return configSet(cmd.OutOrStdout(), cfg.Path(), args[0], args[1])
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the path of the configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), cfg.Path())
		return err
	},
}

func configGet(w io.Writer, path, key string) error {
	value, err := config.GetConfigField(path, key)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, value)
	return err
}

func configSet(w io.Writer, path, key, value string) error {
	if err := config.SetConfigField(path, key, config.ParseValue(value)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Set %s in %s\n", key, path)
	return err
}
