package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	kotlinpoet "github.com/square/kotlinpoet-sub003"
)

type globalOptions struct {
	jsonLogs bool
	verbose  bool
	noColor  bool
}

func newRootCmd() *cobra.Command {
	var opts globalOptions
	root := &cobra.Command{
		Use:           "kpgen",
		Short:         "Generate Kotlin source files from schemas",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = kotlinpoet.Logger().Sync()
		},
	}
	root.PersistentFlags().BoolVar(&opts.jsonLogs, "json-logs", false, "write logs as JSON")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output, including import aliasing")
	root.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func (o globalOptions) setup() error {
	setColor(o.noColor)
	level := zap.WarnLevel
	if o.verbose {
		level = zap.DebugLevel
	}
	var cfg zap.Config
	if o.jsonLogs {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.DisableStacktrace = true
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	l, err := cfg.Build()
	if err != nil {
		return err
	}
	kotlinpoet.SetLogger(l)
	return nil
}
