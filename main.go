// gddocs converts the JSON reference dump of a GDScript project into Markdown
// or Hugo reference pages.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/phobologic/gddocs/internal/config"
	"github.com/phobologic/gddocs/internal/markdown"
	"github.com/phobologic/gddocs/internal/model"
	"github.com/phobologic/gddocs/internal/render"
)

var version = "dev"

// errStale is returned by --check when a generated document differs from the
// file on disk.
var errStale = errors.New("generated documents are out of date")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	cmd := newRootCommand(stdout, stderr)
	cmd.SetArgs(args)
	return cmd.Execute()
}

// generateOptions holds the flags that are not part of the persistent
// configuration.
type generateOptions struct {
	configFile string
	dryRun     bool
	check      bool
	progress   bool
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "gddocs [flags] <file.json|dir>...",
		Short: "Generate Markdown reference pages from GDScript JSON",
		Long: `gddocs converts the JSON reference dump of a GDScript project into one
Markdown document per class, optionally with an index page. With --format hugo
the documents carry Hugo front matter and highlight shortcodes.

Directory arguments are searched for *.json files. Settings are read from
./.gddocs.yaml (or --config) and GDDOCS_* environment variables; flags win.`,
		Version:       version,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args, opts, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetVersionTemplate("gddocs {{.Version}}\n")

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configFile, "config", "", "config file (default ./.gddocs.yaml if present)")
	pf.CountP("verbose", "v", "increase log verbosity (-v info, -vv debug)")
	pf.StringSlice("exclude", nil, "glob patterns of input paths to skip")
	pf.StringSlice("exclude-class", nil, "glob patterns of class names to skip")

	f := cmd.Flags()
	f.StringP("path", "p", "dist", "output directory")
	f.StringP("format", "f", "markdown", "output format: markdown or hugo")
	f.String("front-matter", "toml", "Hugo front matter encoding: toml or yaml")
	f.BoolP("make-index", "i", false, "also write index.md")
	f.StringP("author", "a", "", "Hugo front matter author")
	f.String("date", "", "Hugo front matter date (default today)")
	f.BoolVar(&opts.dryRun, "dry-run", false, "print documents instead of writing them")
	f.BoolVar(&opts.check, "check", false, "fail when documents on disk differ from the generated ones")
	f.BoolVar(&opts.progress, "progress", false, "show a progress bar while writing")
	cmd.MarkFlagsMutuallyExclusive("dry-run", "check")

	cmd.AddCommand(newTocCommand(&opts, stdout, stderr))
	return cmd
}

func runGenerate(cmd *cobra.Command, args []string, opts generateOptions, stdout, stderr io.Writer) error {
	cfg, err := config.Loader{File: opts.configFile, Flags: cmd.Flags()}.Load()
	if err != nil {
		return err
	}
	logger := newLogger(stderr, cfg.Verbose, opts.dryRun)
	if cfg.Source != "" {
		logger.Debug("loaded config", "file", cfg.Source)
	}

	project, classes, err := loadReference(args, cfg, logger)
	if err != nil {
		return err
	}

	date := cfg.Output.Date
	if date == "" {
		date = time.Now().Format(time.DateOnly)
	}
	r, err := render.New(classes, render.Options{
		Format:      render.Format(strings.ToLower(cfg.Output.Format)),
		FrontMatter: render.FrontMatterFormat(strings.ToLower(cfg.Output.FrontMatter)),
		Author:      cfg.Output.Author,
		Date:        date,
	}, logger)
	if err != nil {
		return err
	}

	docs, err := r.Documents(project, cfg.Output.MakeIndex)
	if err != nil {
		return fmt.Errorf("rendering: %w", err)
	}
	logger.Info("rendered documents", "count", len(docs), "format", cfg.Output.Format)

	switch {
	case opts.dryRun:
		logger.Debug("dry run, nothing written", "path", cfg.Output.Path, "documents", documentNames(docs))
		return printDocuments(stdout, docs)
	case opts.check:
		return checkDocuments(stdout, cfg.Output.Path, docs)
	}

	var bar progressReporter
	if opts.progress {
		bar = newProgressBar(len(docs), stderr)
	}
	if err := writeDocuments(cfg.Output.Path, docs, bar); err != nil {
		return err
	}
	logger.Info("wrote documents", "count", len(docs), "path", cfg.Output.Path)
	return nil
}

// newLogger returns a text logger at warn level, raised to info by one -v and
// to debug by two or by a dry run.
func newLogger(w io.Writer, verbosity int, dryRun bool) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case dryRun || verbosity >= 2:
		level = slog.LevelDebug
	case verbosity == 1:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// projectInfo merges config values with the project fields of a reference
// dump; non-empty dump fields win.
func projectInfo(base config.ProjectConfig, files ...*model.ProjectInfo) *model.ProjectInfo {
	info := &model.ProjectInfo{
		Name:        base.Name,
		Description: base.Description,
		Version:     base.Version,
	}
	for _, f := range files {
		if f == nil {
			continue
		}
		if f.Name != "" {
			info.Name = f.Name
		}
		if f.Description != "" {
			info.Description = f.Description
		}
		if f.Version != "" {
			info.Version = f.Version
		}
	}
	return info
}

func documentNames(docs []markdown.Document) []string {
	names := make([]string, len(docs))
	for i, d := range docs {
		names[i] = d.Filename()
	}
	return names
}
