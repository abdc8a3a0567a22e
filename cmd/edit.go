package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tm-cli/tm/internal/editor"
	"github.com/tm-cli/tm/internal/store"
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the data file in $EDITOR",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return editor.Open(filepath.Join(dataDir, store.DataFileName))
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
}
