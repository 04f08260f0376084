package main

import (
	"fmt"
	"io"
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	kotlinpoet "github.com/square/kotlinpoet-sub003"
	"github.com/square/kotlinpoet-sub003/internal/schema"
)

type generateOptions struct {
	outDir      string
	optionsFile string
	stdout      bool
}

func newGenerateCmd() *cobra.Command {
	var opts generateOptions
	cmd := &cobra.Command{
		Use:   "generate [flags] <schema> [schema...]",
		Short: "Render schemas into Kotlin files",
		Long: `Render each YAML or TOML schema into a Kotlin source file. Files are
written under --out using one directory per package segment.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.OutOrStdout(), opts, args)
		},
	}
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", ".", "output source root")
	cmd.Flags().StringVar(&opts.optionsFile, "options", "", "TOML file with render options")
	cmd.Flags().BoolVar(&opts.stdout, "stdout", false, "print rendered files instead of writing them")
	return cmd
}

func runGenerate(out io.Writer, opts generateOptions, paths []string) error {
	base := kotlinpoet.DefaultRenderOptions()
	if opts.optionsFile != "" {
		var err error
		if base, err = kotlinpoet.LoadRenderOptions(opts.optionsFile); err != nil {
			return err
		}
	}

	files, err := buildAll(base, paths)
	if err != nil {
		return err
	}

	if opts.stdout {
		for _, f := range files {
			if err := kotlinpoet.WriteFile(out, f); err != nil {
				return errors.Wrapf(err, "%s", f.RelativePath())
			}
		}
		return nil
	}
	if err := kotlinpoet.WriteFilesToFileSystem(opts.outDir, files...); err != nil {
		return err
	}
	for _, f := range files {
		fmt.Fprintf(out, "%s %s\n", okColor.Sprint("wrote"), f.RelativePath())
	}
	fmt.Fprintf(out, "%s %d file(s) into %s\n", okColor.Sprint("done:"), len(files), opts.outDir)
	return nil
}

// buildAll loads and builds the schemas concurrently. The result is in the
// order of paths.
func buildAll(base kotlinpoet.RenderOptions, paths []string) ([]*kotlinpoet.FileSpec, error) {
	files := make([]*kotlinpoet.FileSpec, len(paths))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			kotlinpoet.Logger().Info("loading schema", zap.String("schema", path))
			s, err := schema.Load(path)
			if err != nil {
				return err
			}
			f, err := s.BuildWith(base)
			if err != nil {
				return errors.Wrapf(err, "%s", path)
			}
			files[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := map[string]string{}
	for i, f := range files {
		p := f.RelativePath()
		if prev, dup := seen[p]; dup {
			return nil, errors.Newf("%s and %s both generate %s", prev, paths[i], p)
		}
		seen[p] = paths[i]
	}
	return files, nil
}

var okColor = color.New(color.FgGreen, color.Bold)

func setColor(disabled bool) {
	if disabled {
		color.NoColor = true
	}
}
