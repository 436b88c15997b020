package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"folio/internal/application/commands"
)

func printIDs(ids []int) error {
	if asJSON {
		if ids == nil {
			ids = []int{}
		}
		return printJSON(ids)
	}
	if len(ids) == 0 {
		fmt.Println("No collapsed folders")
		return nil
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	fmt.Println(strings.Join(parts, " "))
	return nil
}

var collapsedCmd = &cobra.Command{
	Use:   "collapsed",
	Short: "List the collapsed folders",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := commands.NewCollapsedCommand(GetEnv()).Execute(cmd.Context())
		if err != nil {
			return err
		}
		return printIDs(ids)
	},
}

func setCollapsedCmd(use, short string, collapsed bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <folder-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ids, err := commands.NewSetCollapsedCommand(GetEnv(), id, collapsed).Execute(cmd.Context())
			if err != nil {
				return err
			}
			log.WithField("folder", id).Debug("collapse state saved")
			return printIDs(ids)
		},
	}
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Collapse every folder below the root again",
	Long: `Discard the stored collapse state and apply the default rule: every
folder except the root starts collapsed.

Example:
  folio-cli reset`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := commands.NewResetCollapsedCommand(GetEnv()).Execute(cmd.Context())
		if err != nil {
			return err
		}
		return printIDs(ids)
	},
}

func init() {
	rootCmd.AddCommand(collapsedCmd)
	rootCmd.AddCommand(setCollapsedCmd("collapse", "Collapse a folder", true))
	rootCmd.AddCommand(setCollapsedCmd("expand", "Expand a folder", false))
	rootCmd.AddCommand(resetCmd)
}
