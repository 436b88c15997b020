package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"folio/internal/application/commands"
)

var treeAll bool

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Display the notebook tree",
	Long: `Display the notebook tree. Collapsed folders are marked with "+" and
their contents are hidden unless --all is given.

Example:
  folio-cli tree
  folio-cli tree --all --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		lines, err := commands.NewTreeCommand(GetEnv(), treeAll).Execute(cmd.Context())
		if err != nil {
			return err
		}

		if asJSON {
			return printJSON(lines)
		}
		for _, l := range lines {
			marker := " "
			if l.Collapsed {
				marker = "+"
			}
			fmt.Printf("%s%s %d  %s\n", strings.Repeat("  ", l.Depth), marker, l.ID, l.Name)
		}
		return nil
	},
}

func init() {
	treeCmd.Flags().BoolVarP(&treeAll, "all", "a", false, "include the contents of collapsed folders")
	rootCmd.AddCommand(treeCmd)
}
