package commands

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jask/matchlog/internal/tui"
)

func newBrowseCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse and filter matches interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := env.service(cmd.Context())
			if err != nil {
				return err
			}
			p := tea.NewProgram(tui.New(cmd.Context(), svc), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}
}
