package cmd

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/tm-cli/tm/internal/tui"
	"github.com/tm-cli/tm/internal/watcher"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Browse the task tree interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		model := tui.NewTree(st)
		p := tea.NewProgram(model, tea.WithAltScreen())

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		go watchDataFile(ctx, p)

		_, err := p.Run()
		return err
	},
}

// watchDataFile refreshes the tree when another process rewrites tasks.json.
func watchDataFile(ctx context.Context, p *tea.Program) {
	w, err := watcher.New(st.Path(), func() {
		p.Send(tui.ReloadMsg{})
	})
	if err != nil {
		return // non-fatal: the tree works without live refresh
	}
	defer w.Close()
	w.Run(ctx, nil)
}

func init() {
	rootCmd.AddCommand(uiCmd)
}
