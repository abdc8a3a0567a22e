package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tm-cli/tm/internal/render"
)

const guideMarkdown = `# tm guide

Tasks live in a tree: any task can carry subtasks, nested as deep as you
like. Commands address a task by its path of zero-based indices, one per
level, space-separated or dotted: ` + "`1 0`" + ` (or ` + "`1.0`" + `) is the first subtask
of the second top-level task.

## Everyday flow

- ` + "`tm add \"Plan trip\"`" + ` adds a top-level task
- ` + "`tm add \"Book hotel\" 0`" + ` adds a subtask under task 0
- ` + "`tm list`" + ` shows the task tree
- ` + "`tm check 0 1`" + ` completes a task and everything under it
- ` + "`tm uncheck 0 1`" + ` reopens a task and everything under it
- ` + "`tm delete 2`" + ` removes a task and its subtasks
- ` + "`tm clear`" + ` drops every completed task
- ` + "`tm clear-all`" + ` empties the current project

## Moving tasks

` + "`tm move <path>`" + ` with exactly one of:

- ` + "`-u`" + `/` + "`--up`" + ` swaps with the task above
- ` + "`-d`" + `/` + "`--down`" + ` swaps with the task below
- ` + "`-t`" + `/` + "`--top`" + ` jumps to the top
- ` + "`-b`" + `/` + "`--bottom`" + ` jumps to the bottom
- ` + "`-p N`" + `/` + "`--position N`" + ` jumps to position N

A move never crosses levels: the task trades places inside its own list.

## Projects

Tasks are grouped into projects; commands act on the current one.

- ` + "`tm create-project work`" + ` then ` + "`tm switch-project work`" + `
- ` + "`tm list-projects`" + ` marks the current project with ` + "`*`" + `
- ` + "`tm delete-project work`" + ` (the ` + "`default`" + ` project cannot be deleted)

## Keeping it healthy

- ` + "`tm ui`" + ` opens a live tree browser (space toggles, d deletes, q quits)
- ` + "`tm doctor`" + ` checks the data file and reports anything off
- ` + "`tm edit`" + ` opens the raw data file in $EDITOR

Everything is stored in a single JSON file; ` + "`tm doctor`" + ` prints its location.
`

var guideCmd = &cobra.Command{
	Use:   "guide",
	Short: "Show the usage guide",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := render.Markdown(guideMarkdown)
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(guideCmd)
}
