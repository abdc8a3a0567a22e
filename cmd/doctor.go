package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tm-cli/tm/internal/clierr"
	"github.com/tm-cli/tm/internal/config"
	"github.com/tm-cli/tm/internal/render"
	"github.com/tm-cli/tm/internal/store"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the data file for problems",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d := store.Diagnose(filepath.Join(dataDir, store.DataFileName))

		fmt.Printf("%s %s\n", render.Label("data file:"), d.Path)

		switch {
		case !d.Exists:
			fmt.Printf("%s no data file yet; a fresh one is created on the first write\n", render.OK("✓"))
		case d.Healthy():
			fmt.Printf("%s data file is valid\n", render.OK("✓"))
		}
		for _, e := range d.Errors {
			fmt.Printf("%s %s\n", render.Fail("✗"), e)
		}
		for _, w := range d.Warnings {
			fmt.Printf("%s %s\n", render.Warn("⚠"), w)
		}

		var cfgErr error
		if _, err := os.Stat(filepath.Join(dataDir, config.FileName)); err == nil {
			if _, cfgErr = config.Load(dataDir); cfgErr != nil {
				fmt.Printf("%s %v\n", render.Fail("✗"), cfgErr)
			} else {
				fmt.Printf("%s %s is valid\n", render.OK("✓"), config.FileName)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			cfgErr = err
			fmt.Printf("%s %v\n", render.Fail("✗"), err)
		}

		if !d.Healthy() {
			return clierr.Newf(clierr.DataCorruption, "%s has %d problem(s)", store.DataFileName, len(d.Errors))
		}
		if cfgErr != nil {
			return fmt.Errorf("%s is not usable", config.FileName)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
