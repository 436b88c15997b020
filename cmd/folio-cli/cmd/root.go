package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"folio/internal/application"
	"folio/internal/application/commands"
	"folio/internal/config"
	"folio/internal/logging"
	"folio/internal/workspace"
)

var (
	rootPath    string
	outlinePath string
	logLevel    string
	asJSON      bool

	ws  *workspace.Workspace
	log *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:   "folio-cli",
	Short: "CLI for browsing folio notebooks",
	Long: `folio-cli is a command-line interface for folio notebooks.

It prints the notebook tree the way the browser shows it, resolves node
paths, and reads or changes which folders are collapsed.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		cfg, err := config.Load(config.Path())
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("root") {
			cfg.Root = rootPath
		}
		if cmd.Flags().Changed("outline") {
			cfg.Outline = outlinePath
		}
		if !cmd.Flags().Changed("log-level") {
			logLevel = cfg.LogLevel
		}

		log = logging.New(os.Stderr, logLevel)
		ws, err = workspace.Open(cfg, log)
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if ws == nil {
			return nil
		}
		return ws.Close()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootPath, "root", "r", config.RootPath(), "path to the notebook")
	rootCmd.PersistentFlags().StringVar(&outlinePath, "outline", "", "browse a YAML or JSON outline file instead")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level for stderr")
	rootCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "print JSON")
}

// GetEnv returns the initialized command environment
func GetEnv() commands.Env {
	return ws.Env
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, &application.ValidationError{
			Field:   "id",
			Message: fmt.Sprintf("expected a positive integer, got: %s", arg),
		}
	}
	return id, nil
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
