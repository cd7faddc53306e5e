package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/owl-run/internal/games/owlrun"
	"github.com/vovakirdan/owl-run/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List modes, runners and upgrades",
	Long:  `Shows every registered mode, the selectable runners with their attributes, and the upgrades offered between levels.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		writeList(cmd.OutOrStdout())
	},
}

func writeList(w io.Writer) {
	modes := registry.List()
	if len(modes) == 0 {
		fmt.Fprintln(w, "No modes available.")
		return
	}

	fmt.Fprintln(w, "Modes:")
	maxIDLen := 2 // "ID" header
	for _, m := range modes {
		maxIDLen = max(maxIDLen, len(m.ID))
	}
	fmt.Fprintf(w, "  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Fprintf(w, "  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, m := range modes {
		fmt.Fprintf(w, "  %-*s  %s\n", maxIDLen, m.ID, m.Title)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Runners:")
	fmt.Fprintf(w, "  %-9s %5s %5s %5s %5s %5s %5s %5s %5s\n",
		"Name", "Speed", "Stun", "Hang", "Dash", "Accel", "Pick", "Warn", "Inv")
	for _, a := range owlrun.Archetypes() {
		s := a.Stats()
		fmt.Fprintf(w, "  %-9s %5.2f %5.2f %5.2f %5.2f %5.2f %5.2f %5.2f %5.2f\n",
			a, s.Speed, s.Stun, s.Hang, s.DashCooldown, s.Accel, s.PickupFreq, s.Warning, s.Invuln)
		fmt.Fprintf(w, "            %s\n", a.Description())
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Upgrades:")
	for _, u := range owlrun.Upgrades() {
		fmt.Fprintf(w, "  %-13s %s\n", u, u.Title())
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'owlrun play --character <name>' to start with a runner.")
}
