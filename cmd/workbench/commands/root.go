package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/automa-saga/logx"
	"github.com/joomcode/errorx"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/workbenchlabs/workbench/cmd/workbench/commands/version"
	"github.com/workbenchlabs/workbench/internal/config"
	"github.com/workbenchlabs/workbench/internal/core"
	"github.com/workbenchlabs/workbench/internal/doctor"
)

// examples:
// ./workbench setup
// ./workbench setup --config ./config.yaml
// ./workbench check

var (
	// Used for flags.
	flagConfig       string
	flagVersion      bool
	flagOutputFormat string

	rootCmd = &cobra.Command{
		Use:   "workbench",
		Short: "A user friendly tool to provision a developer workstation",
		Long:  "Workbench - A user friendly tool to provision a developer workstation",
		RunE: func(cmd *cobra.Command, args []string) error {
			if flagVersion {
				version.PrintVersion(cmd, flagOutputFormat)
				return nil
			}

			return cmd.Help()
		},
	}
)

func init() {
	registerGlobalFlags(rootCmd.PersistentFlags())

	// disable command sorting to keep the order of commands as added
	cobra.EnableCommandSorting = false

	// add subcommands
	rootCmd.AddCommand(createSetupCommand())
	rootCmd.AddCommand(createCheckCommand())
	rootCmd.AddCommand(version.GetCmd())
}

func registerGlobalFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&flagConfig, "config", "c", "", "config file path")

	// support '--version', '-v' to show version information
	fs.BoolVarP(&flagVersion, "version", "v", false, "Show version")
	fs.StringVarP(&flagOutputFormat, "output", "o", "yaml", "Output format (yaml|json)")
}

// Execute executes the root command.
func Execute(ctx context.Context) error {
	if ctx == nil {
		return errorx.IllegalArgument.New("context is required")
	}

	cobra.OnInitialize(func() {
		initConfig(ctx)
	})

	// execute the root command
	_, err := rootCmd.ExecuteContextC(ctx)
	if err != nil {
		return errorx.IllegalState.Wrap(err, "failed to execute command")
	}

	return nil
}

func initConfig(ctx context.Context) {
	err := config.Initialize(flagConfig)
	if err != nil {
		doctor.CheckErr(ctx, err)
	}

	cfg := config.Get()

	// Every run logs to a timestamped file so failed runs leave a record
	// behind after the workspace is removed.
	cfg.Log.FileLogging = true
	if cfg.Log.Directory == "" {
		cfg.Log.Directory = core.Paths().LogsDir
	}
	if cfg.Log.Filename == "" {
		cfg.Log.Filename = fmt.Sprintf("workbench_%s.log", time.Now().Format("20060102_150405"))
	}
	config.Set(&cfg)

	err = logx.Initialize(cfg.Log)
	if err != nil {
		doctor.CheckErr(ctx, err)
	}
}
