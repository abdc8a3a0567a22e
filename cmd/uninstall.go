package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/tm-cli/tm/internal/clierr"
)

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Completely remove tm and all its data",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		exe, err := os.Executable()
		if err != nil {
			return fmt.Errorf("locating binary: %w", err)
		}

		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			fmt.Println("⚠️  This will permanently delete:")
			fmt.Printf("   • ALL your task data: %s\n", dataDir)
			fmt.Printf("   • TM CLI binary: %s\n", exe)
			fmt.Println()
			var confirm bool
			if err := huh.NewConfirm().
				Title("Are you sure you want to continue?").
				Value(&confirm).
				Run(); err != nil || !confirm {
				fmt.Println("Uninstall cancelled.")
				return nil
			}
		}

		if _, err := os.Stat(dataDir); err == nil {
			if err := os.RemoveAll(dataDir); err != nil {
				return clierr.Wrap(clierr.IOFailure, err, "removing data directory")
			}
			fmt.Printf("✓ Removed all task data from %s\n", dataDir)
		} else {
			fmt.Println("No data found to remove")
		}

		fmt.Printf("✓ Removing TM CLI binary from %s\n", exe)
		if runtime.GOOS == "windows" {
			fmt.Println("⚠️  Windows detected - binary removal requires manual deletion")
			fmt.Printf("   Please manually remove: %s\n", exe)
		} else if err := os.Remove(exe); err != nil {
			fmt.Printf("⚠️  Could not remove binary automatically: %v\n", err)
			fmt.Printf("   Please manually remove: %s\n", exe)
		} else {
			fmt.Println("✓ Removed TM CLI binary")
		}

		fmt.Println()
		fmt.Println("✅ TM CLI has been uninstalled successfully!")
		fmt.Println("   Thank you for using TM CLI!")
		return nil
	},
}

func init() {
	uninstallCmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")
	rootCmd.AddCommand(uninstallCmd)
}
