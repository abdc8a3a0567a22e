package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/tm-cli/tm/internal/render"
)

var createProjectCmd = &cobra.Command{
	Use:     "create-project <name>",
	Aliases: []string{"cp"},
	Short:   "Create a new project",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := st.CreateProject(args[0]); err != nil {
			return err
		}
		fmt.Printf("created project '%s'\n", args[0])
		return nil
	},
}

var switchProjectCmd = &cobra.Command{
	Use:     "switch-project [name]",
	Aliases: []string{"sp"},
	Short:   "Switch to a different project",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var name string
		if len(args) == 1 {
			name = args[0]
		} else {
			projects := st.Projects()
			opts := make([]huh.Option[string], len(projects))
			for i, p := range projects {
				opts[i] = huh.NewOption(p.Name, p.Name)
			}
			if err := huh.NewSelect[string]().
				Title("Select a project").
				Options(opts...).
				Value(&name).
				Run(); err != nil {
				return fmt.Errorf("selection cancelled")
			}
		}

		if err := st.SwitchProject(name); err != nil {
			return err
		}
		fmt.Printf("switched to project '%s'\n", name)
		return nil
	},
}

var listProjectsCmd = &cobra.Command{
	Use:     "list-projects",
	Aliases: []string{"lp"},
	Short:   "List all available projects",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		render.ProjectList(os.Stdout, st.CurrentProjectName(), st.Projects())
		return nil
	},
}

var deleteProjectCmd = &cobra.Command{
	Use:     "delete-project <name>",
	Aliases: []string{"dp"},
	Short:   "Delete a project",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := confirmDelete(cmd, fmt.Sprintf("project '%s' and all its tasks", args[0])); err != nil {
			return err
		}
		if err := st.DeleteProject(args[0]); err != nil {
			return err
		}
		fmt.Printf("deleted project '%s'\n", args[0])
		return nil
	},
}

// confirmDelete prompts before a destructive action unless --force is set.
func confirmDelete(cmd *cobra.Command, what string) error {
	if force, _ := cmd.Flags().GetBool("force"); force {
		return nil
	}
	var confirm bool
	msg := fmt.Sprintf("Delete %s?", what)
	if err := huh.NewConfirm().Title(msg).Value(&confirm).Run(); err != nil || !confirm {
		return fmt.Errorf("deletion cancelled")
	}
	return nil
}

func init() {
	deleteProjectCmd.Flags().BoolP("force", "f", false, "skip confirmation")

	rootCmd.AddCommand(createProjectCmd)
	rootCmd.AddCommand(switchProjectCmd)
	rootCmd.AddCommand(listProjectsCmd)
	rootCmd.AddCommand(deleteProjectCmd)
}
