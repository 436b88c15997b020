package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"folio/internal/application/commands"
)

type searchOutput struct {
	ID         int    `json:"id"`
	Type       string `json:"type"`
	Breadcrumb string `json:"breadcrumb"`
	Score      int    `json:"score"`
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the notebook",
	Long: `Search node names with fuzzy matching. Results are ranked by relevance.

Examples:
  folio-cli search soup
  folio-cli search rcp/sp`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		results, err := commands.NewSearchCommand(GetEnv(), args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}

		if asJSON {
			out := make([]searchOutput, 0, len(results))
			for _, r := range results {
				out = append(out, searchOutput{
					ID:         r.Node.ID,
					Type:       r.Node.Type.String(),
					Breadcrumb: r.Breadcrumb,
					Score:      r.Score,
				})
			}
			return printJSON(out)
		}

		if len(results) == 0 {
			fmt.Println("No results found")
			return nil
		}
		for _, r := range results {
			fmt.Printf("[%s] %d %s\n", r.Node.Type, r.Node.ID, r.Breadcrumb)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
