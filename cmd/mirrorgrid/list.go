package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all levels",
	Long:  `Shows the levels from the configured source, sorted by ID.`,
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, _ []string) error {
	lvls, err := levelLoader().LoadAll()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(lvls) == 0 {
		fmt.Fprintf(out, "No levels found in %s.\n", levelSource())
		return nil
	}

	fmt.Fprintf(out, "Levels (%s):\n\n", levelSource())

	// Calculate column widths
	maxIDLen, maxNameLen := 2, 4 // "ID", "Name" headers
	for _, l := range lvls {
		maxIDLen = max(maxIDLen, len(l.ID))
		maxNameLen = max(maxNameLen, len(l.Title()))
	}

	fmt.Fprintf(out, "  %-*s  %-*s  %-7s  %7s  %7s\n", maxIDLen, "ID", maxNameLen, "Name", "Size", "Enemies", "Mirrors")
	fmt.Fprintf(out, "  %-*s  %-*s  %-7s  %7s  %7s\n", maxIDLen, "--", maxNameLen, "----", "----", "-------", "-------")

	for _, l := range lvls {
		fmt.Fprintf(out, "  %-*s  %-*s  %-7s  %7d  %7d\n",
			maxIDLen, l.ID, maxNameLen, l.Title(), l.Bounds.String(), len(l.Automatic), len(l.Deflectors))
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'mirrorgrid play <id>' to play a level.")
	return nil
}
