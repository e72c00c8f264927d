package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func (c *cli) workspaceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workspace",
		Short: "Inspect the workspace",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the current project and remembered directories",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			ws := c.app.Workspace

			heading.Fprintln(w, "Workspace")
			field(w, "base-dir", c.app.Layout.Root)
			if ws.CurrentProject != nil {
				field(w, "current", fmt.Sprintf("%s (%s)", ws.CurrentProject.Name, ws.CurrentProjectPath))
			} else {
				field(w, "current", "none")
			}

			heading.Fprintln(w, "Projects")
			for _, name := range sortedKeys(ws.ProjectHistory) {
				field(w, name, ws.ProjectHistory[name])
			}
			heading.Fprintln(w, "Directories")
			for _, category := range sortedKeys(ws.History) {
				field(w, category, ws.History[category])
			}
		},
	})
	return cmd
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
