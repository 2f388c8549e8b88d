package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"squish/internal/tools"
	"squish/internal/tui"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report availability of the external codec tools",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		missing := 0
		for _, st := range tools.Report() {
			if st.Found {
				version := st.Version
				if version == "" {
					version = "found"
				}
				fmt.Fprintf(os.Stdout, "%s %-10s %s\n",
					okStyle.Render("✓"), st.Name, versionStyle.Render(version))
				continue
			}
			missing++
			fmt.Fprintf(os.Stdout, "%s %-10s %s\n",
				missingStyle.Render("✗"), st.Name, missingStyle.Render("not found on PATH"))
		}

		if missing == 0 {
			fmt.Fprintln(os.Stdout, okStyle.Render("All codec tools available."))
		} else {
			fmt.Fprintln(os.Stdout, missingStyle.Render("Install the missing tools before running squish."))
		}
	},
}

var (
	okStyle      = lipgloss.NewStyle().Foreground(tui.ColorSuccess)
	missingStyle = lipgloss.NewStyle().Foreground(tui.ColorError)
	versionStyle = lipgloss.NewStyle().Foreground(tui.ColorDim)
)

func init() {
	rootCmd.AddCommand(checkCmd)
}
