// Package cmd implements the tm CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
	mtp "github.com/modeltoolsprotocol/go-sdk"
	"github.com/spf13/cobra"
	"github.com/tm-cli/tm/internal/clierr"
	"github.com/tm-cli/tm/internal/config"
	"github.com/tm-cli/tm/internal/render"
	"github.com/tm-cli/tm/internal/store"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	dataDir     string
	flagVerbose bool
	flagNoColor bool
	st          *store.Store
	cfg         = &config.Config{}
)

// defaultDataDir resolves the platform data directory for tm:
// %APPDATA%\tm on Windows, ~/Library/Application Support/tm on macOS,
// $XDG_DATA_HOME/tm or ~/.local/share/tm elsewhere.
func defaultDataDir() string {
	switch runtime.GOOS {
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "tm")
		}
	case "darwin":
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, "Library", "Application Support", "tm")
		}
	default:
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, "tm")
		}
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, ".local", "share", "tm")
		}
	}
	return filepath.Join(".", ".tm")
}

var rootCmd = &cobra.Command{
	Use:     "tm",
	Short:   "A simple and powerful task manager CLI",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if flagVerbose {
			log.SetLevel(log.DebugLevel)
		}
		if flagNoColor || os.Getenv("NO_COLOR") != "" {
			render.DisableColor()
		}

		// Maintenance commands never load task data; doctor and edit must
		// keep working when tasks.json is unreadable.
		if storeless(cmd) {
			if c, err := config.Load(dataDir); err == nil {
				cfg = c
			} else {
				log.Debug("config unreadable, using defaults", "err", err)
			}
			if cfg.Color == "never" {
				render.DisableColor()
			}
			return nil
		}

		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return clierr.Wrap(clierr.IOFailure, err, "creating data directory")
		}

		var err error
		cfg, err = config.Load(dataDir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if cfg.Color == "never" {
			render.DisableColor()
		}

		st = store.New(dataDir)
		return st.Load()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// storeless reports whether cmd operates without the task store.
func storeless(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "guide", "doctor", "edit", "update", "uninstall", "help", "completion":
		return true
	}
	return cmd.Parent() != nil && cmd.Parent().Name() == "completion"
}

func init() {
	log.SetReportTimestamp(false)

	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", defaultDataDir(), "data directory path")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable color output")
	rootCmd.SetVersionTemplate("tm {{.Version}}\n")

	mtpOpts := &mtp.DescribeOptions{
		Commands: map[string]*mtp.CommandAnnotation{
			"add": {
				Examples: []mtp.Example{
					{Description: "Add a top-level task", Command: "tm add \"Buy groceries\""},
					{Description: "Add a subtask under task 0", Command: "tm add \"Get milk\" 0"},
					{Description: "Add a subtask two levels deep", Command: "tm add \"Whole milk\" 0 1"},
				},
			},
			"list": {
				Stdout: &mtp.IODescriptor{
					ContentType: "text/plain",
					Description: "Current project name and the indented task tree with [✓]/[○] markers and zero-based indices",
				},
				Examples: []mtp.Example{
					{Description: "List tasks in the current project", Command: "tm list"},
				},
			},
			"check": {
				Examples: []mtp.Example{
					{Description: "Complete task 2", Command: "tm check 2"},
					{Description: "Complete subtask 1 of task 0", Command: "tm check 0 1"},
				},
			},
			"uncheck": {
				Examples: []mtp.Example{
					{Description: "Reopen task 2 and its subtasks", Command: "tm uncheck 2"},
				},
			},
			"delete": {
				Examples: []mtp.Example{
					{Description: "Delete task 1 and its subtasks", Command: "tm delete 1"},
				},
			},
			"clear": {
				Examples: []mtp.Example{
					{Description: "Remove all completed tasks", Command: "tm clear"},
				},
			},
			"clear-all": {
				Examples: []mtp.Example{
					{Description: "Remove every task in the current project", Command: "tm clear-all"},
				},
			},
			"move": {
				Examples: []mtp.Example{
					{Description: "Move task 3 up one position", Command: "tm move 3 --up"},
					{Description: "Move task 0 to the bottom", Command: "tm move 0 -b"},
					{Description: "Move subtask 0 1 to position 4", Command: "tm move 0 1 -p 4"},
				},
			},
			"create-project": {
				Examples: []mtp.Example{
					{Description: "Create a project", Command: "tm create-project work"},
				},
			},
			"switch-project": {
				Examples: []mtp.Example{
					{Description: "Switch to a project", Command: "tm switch-project work"},
					{Description: "Pick a project interactively", Command: "tm switch-project"},
				},
			},
			"list-projects": {
				Stdout: &mtp.IODescriptor{
					ContentType: "text/plain",
					Description: "One project per line, the current one marked with *",
				},
			},
			"delete-project": {
				Examples: []mtp.Example{
					{Description: "Delete a project (interactive confirm)", Command: "tm delete-project work"},
					{Description: "Delete a project (skip confirm)", Command: "tm delete-project work --force"},
				},
			},
			"doctor": {
				Stdout: &mtp.IODescriptor{
					ContentType: "text/plain",
					Description: "Data file diagnosis: errors that block loading and warnings that are healed automatically",
				},
			},
		},
	}

	mtp.WithDescribe(rootCmd, mtpOpts)
}

// Execute runs the root command. Failures print to stderr as "error: ..."
// and exit with 1 for domain errors, 2 for data corruption or IO failures.
func Execute() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}

	// SilentError: the command already printed its report.
	var silent *clierr.SilentError
	if errors.As(err, &silent) {
		os.Exit(silent.Code)
	}

	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(clierr.ExitCode(err))
}
