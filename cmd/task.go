package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tm-cli/tm/internal/render"
	"github.com/tm-cli/tm/internal/store"
)

// parsePath converts command-line path arguments into zero-based indices.
// Segments are space-separated ("0 1 2"), dotted ("0.1.2"), or a mix.
func parsePath(args []string) ([]int, error) {
	var path []int
	for _, arg := range args {
		for _, seg := range strings.Split(arg, ".") {
			n, err := strconv.Atoi(seg)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("invalid path segment %q", seg)
			}
			path = append(path, n)
		}
	}
	return path, nil
}

var addCmd = &cobra.Command{
	Use:     "add <text> [path...]",
	Aliases: []string{"a"},
	Short:   "Add a new task or subtask",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := parsePath(args[1:])
		if err != nil {
			return err
		}
		if err := st.Add(path, args[0]); err != nil {
			return err
		}
		if len(path) == 0 {
			fmt.Println("added task item")
		} else {
			fmt.Printf("added subtask to item %s\n", store.FormatPath(path))
		}
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"l", "ls"},
	Short:   "List all tasks",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		render.TaskList(os.Stdout, st.CurrentProjectName(), st.CurrentTasks())
		return nil
	},
}

var checkCmd = &cobra.Command{
	Use:     "check <path...>",
	Aliases: []string{"c"},
	Short:   "Mark an item as completed",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := parsePath(args)
		if err != nil {
			return err
		}
		if err := st.Complete(path); err != nil {
			return err
		}
		fmt.Printf("completed item %s\n", store.FormatPath(path))
		return nil
	},
}

var uncheckCmd = &cobra.Command{
	Use:     "uncheck <path...>",
	Aliases: []string{"uc"},
	Short:   "Mark an item as not completed",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := parsePath(args)
		if err != nil {
			return err
		}
		if err := st.Uncomplete(path); err != nil {
			return err
		}
		fmt.Printf("uncompleted item %s\n", store.FormatPath(path))
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:     "delete <path...>",
	Aliases: []string{"d", "rm"},
	Short:   "Delete a task",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := parsePath(args)
		if err != nil {
			return err
		}
		if err := st.Delete(path); err != nil {
			return err
		}
		fmt.Printf("deleted item %s\n", store.FormatPath(path))
		return nil
	},
}

var clearCmd = &cobra.Command{
	Use:     "clear",
	Aliases: []string{"cl"},
	Short:   "Clear all completed tasks",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := st.ClearCompleted(); err != nil {
			return err
		}
		fmt.Println("cleared completed items")
		return nil
	},
}

var clearAllCmd = &cobra.Command{
	Use:     "clear-all",
	Aliases: []string{"ca"},
	Short:   "Clear all tasks",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := st.ClearAll(); err != nil {
			return err
		}
		fmt.Println("cleared all items")
		return nil
	},
}

var moveCmd = &cobra.Command{
	Use:     "move <path...>",
	Aliases: []string{"m"},
	Short:   "Move a task up or down in the list",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := parsePath(args)
		if err != nil {
			return err
		}

		up, _ := cmd.Flags().GetBool("up")
		down, _ := cmd.Flags().GetBool("down")
		top, _ := cmd.Flags().GetBool("top")
		bottom, _ := cmd.Flags().GetBool("bottom")
		position, _ := cmd.Flags().GetInt("position")

		var direction string
		switch {
		case up:
			direction = "up"
		case down:
			direction = "down"
		case top:
			direction = "top"
		case bottom:
			direction = "bottom"
		case cmd.Flags().Changed("position"):
			direction = strconv.Itoa(position)
		default:
			return errors.New("must specify a direction flag (-u, -d, -t, -b) or position (-p)")
		}

		if err := st.Move(path, direction); err != nil {
			return err
		}
		fmt.Printf("moved item %s %s\n", store.FormatPath(path), direction)
		return nil
	},
}

func init() {
	moveCmd.Flags().BoolP("up", "u", false, "move up one position")
	moveCmd.Flags().BoolP("down", "d", false, "move down one position")
	moveCmd.Flags().BoolP("top", "t", false, "move to top")
	moveCmd.Flags().BoolP("bottom", "b", false, "move to bottom")
	moveCmd.Flags().IntP("position", "p", 0, "specific position to move to")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(uncheckCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(clearAllCmd)
	rootCmd.AddCommand(moveCmd)
}
