package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/syssam/valobj/compiler/gen"
	"github.com/syssam/valobj/compiler/gen/golang"
	"github.com/syssam/valobj/compiler/load"
)

// errFailed is returned when at least one class failed. The failures are
// already reported, so main only sets the exit code.
var errFailed = errors.New("one or more classes failed")

// app holds the state shared by the commands.
type app struct {
	settings settings
	logger   *slog.Logger
	cfg      *gen.Config
}

func newRootCmd(environ func() []string) *cobra.Command {
	a := &app{}
	s, loadErr := loadSettings(environ)
	if loadErr == nil {
		a.settings = s
	} else {
		a.settings = defaultSettings()
	}
	cmd := &cobra.Command{
		Use:           "valobj",
		Short:         "Generate value classes from declarations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if loadErr != nil {
				return loadErr
			}
			logger, err := newLogger(cmd.ErrOrStderr(), a.settings.LogLevel, a.settings.LogJSON)
			if err != nil {
				return fmt.Errorf("log level: %w", err)
			}
			a.logger = logger
			a.cfg, err = a.settings.config(logger)
			return err
		},
	}
	flags := cmd.PersistentFlags()
	flags.StringVar(&a.settings.LogLevel, "log-level", a.settings.LogLevel, "log level: debug, info, warn or error")
	flags.BoolVar(&a.settings.LogJSON, "log-json", a.settings.LogJSON, "log in JSON")
	flags.IntVar(&a.settings.Workers, "workers", a.settings.Workers, "number of classes generated in parallel")
	flags.StringVar(&a.settings.Options, "options", a.settings.Options, "default options, for example ExcludeWith|ExcludeToString")
	flags.StringVar(&a.settings.ConstructorAccess, "constructor-access", a.settings.ConstructorAccess, "default constructor access level")
	flags.StringVar(&a.settings.BuilderAccess, "builder-access", a.settings.BuilderAccess, "default builder access level")

	cmd.AddCommand(
		newPlanCmd(a),
		newRenderCmd(a),
		newWatchCmd(a),
	)
	return cmd
}

// generate loads the declaration files and generates their classes. Files
// that cannot be loaded are reported as failed results.
func (a *app) generate(ctx context.Context, paths []string) *gen.BatchResult {
	var (
		classes []*load.Class
		failed  []*gen.Result
	)
	for _, p := range paths {
		cs, err := load.LoadFile(p)
		if err != nil {
			failed = append(failed, &gen.Result{Class: p, Err: err})
			continue
		}
		classes = append(classes, cs...)
	}
	res := gen.GenerateAll(ctx, a.cfg, classes...)
	res.Results = append(failed, res.Results...)
	return res
}

// report prints the failures of a batch and returns errFailed if any.
func report(w io.Writer, res *gen.BatchResult) error {
	failed := res.Failed()
	for _, r := range failed {
		fmt.Fprintln(w, color.RedString("✗ %s: %v", r.Class, r.Err))
	}
	if len(failed) > 0 {
		return errFailed
	}
	return nil
}

// generator returns the renderer writing to out. The package name defaults
// to the name of the output directory.
func (a *app) generator(out, pkg string) (*golang.Generator, error) {
	if pkg == "" {
		abs, err := filepath.Abs(out)
		if err != nil {
			return nil, err
		}
		pkg = filepath.Base(abs)
	}
	return golang.NewGenerator(pkg, out).
		WithWorkers(a.settings.Workers).
		WithLogger(a.logger), nil
}

// render generates and renders the classes of paths once.
func (a *app) render(ctx context.Context, cmd *cobra.Command, g *golang.Generator, paths []string) error {
	res := a.generate(ctx, paths)
	written, genErr := g.Generate(ctx, res.Contracts()...)
	for _, p := range written {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	err := report(cmd.ErrOrStderr(), res)
	if genErr != nil {
		if ctx.Err() != nil {
			return genErr
		}
		fmt.Fprintln(cmd.ErrOrStderr(), color.RedString("✗ %v", genErr))
		return errFailed
	}
	return err
}
