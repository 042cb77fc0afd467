/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fightkeep/fightkeep/internal/selectdef"
	"github.com/fightkeep/fightkeep/pkg/config"
	"github.com/fightkeep/fightkeep/pkg/safeio"
)

func newRosterCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Inspect and edit the select.def roster",
		Long: `Roster works on the engine's master registration list (select.def):
listing registered characters, appending new ones, and reordering entries.
Comments and untouched lines are preserved byte for byte.`,
	}
	cmd.PersistentFlags().String("file", "", "Path to select.def (default <root>/data/select.def)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List registered characters",
		RunE:  runRosterList,
	}
	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Register a character at the end of the roster",
		Args:  cobra.ExactArgs(1),
		RunE:  runRosterAdd,
	}
	reorderCmd := &cobra.Command{
		Use:   "reorder <name>...",
		Short: "Rewrite the roster into the given order",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runRosterReorder,
	}
	cmd.AddCommand(listCmd, addCmd, reorderCmd)
	return cmd
}

func rosterPath(cmd *cobra.Command) (string, error) {
	if file, _ := cmd.Flags().GetString("file"); file != "" {
		return safeio.CleanUserPath(file)
	}
	root, err := resolveRoot(cmd)
	if err != nil {
		return "", err
	}
	cfg, err := config.Load(root)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errConfig, err)
	}
	return filepath.Join(cfg.Root, "data", "select.def"), nil
}

func runRosterList(cmd *cobra.Command, _ []string) error {
	path, err := rosterPath(cmd)
	if err != nil {
		return err
	}
	list, err := selectdef.Load(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	entries := list.Entries()
	if len(entries) == 0 {
		fmt.Fprintln(out, "Roster is empty")
		return nil
	}
	for _, e := range entries {
		if e.Params != "" {
			fmt.Fprintf(out, "%s (%s)\n", e.Name, e.Params)
		} else {
			fmt.Fprintln(out, e.Name)
		}
	}
	return nil
}

func runRosterAdd(cmd *cobra.Command, args []string) error {
	path, err := rosterPath(cmd)
	if err != nil {
		return err
	}
	list, err := selectdef.Load(path)
	if err != nil {
		return err
	}
	if err := list.AddCharacter(args[0]); err != nil {
		return err
	}
	if err := list.Save(nil); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Registered %s\n", args[0])
	return nil
}

func runRosterReorder(cmd *cobra.Command, args []string) error {
	path, err := rosterPath(cmd)
	if err != nil {
		return err
	}
	list, err := selectdef.Load(path)
	if err != nil {
		return err
	}
	if err := list.Reorder(args); err != nil {
		return err
	}
	if err := list.Save(nil); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Reordered %d entries\n", len(args))
	return nil
}
