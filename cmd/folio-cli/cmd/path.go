package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"folio/internal/application/commands"
)

type pathOutput struct {
	ID         int    `json:"id"`
	Type       string `json:"type"`
	Breadcrumb string `json:"breadcrumb"`
	Ancestors  []int  `json:"ancestors"`
}

func printPath(r commands.PathResult) error {
	if asJSON {
		out := pathOutput{
			ID:         r.Node.ID,
			Type:       r.Node.Type.String(),
			Breadcrumb: r.Breadcrumb(),
			Ancestors:  []int{},
		}
		for _, a := range r.Ancestors {
			out.Ancestors = append(out.Ancestors, a.ID)
		}
		return printJSON(out)
	}
	fmt.Printf("%d  %s  %s\n", r.Node.ID, r.Node.Type, r.Breadcrumb())
	return nil
}

var pathCmd = &cobra.Command{
	Use:   "path <id>",
	Short: "Show the breadcrumb of a node",
	Long: `Show a node's ancestors from the root down to the node itself.

Example:
  folio-cli path 12`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		result, err := commands.NewPathCommand(GetEnv(), id).Execute(cmd.Context())
		if err != nil {
			return err
		}
		return printPath(result)
	},
}

var firstLeafCmd = &cobra.Command{
	Use:   "first-leaf <folder-id>",
	Short: "Find the first note under a folder",
	Long: `Find the first file under a folder in depth-first order, the note the
browser opens with "o".

Example:
  folio-cli first-leaf 3`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		result, err := commands.NewFirstLeafCommand(GetEnv(), id).Execute(cmd.Context())
		if err != nil {
			return err
		}
		return printPath(result)
	},
}

func init() {
	rootCmd.AddCommand(pathCmd)
	rootCmd.AddCommand(firstLeafCmd)
}
