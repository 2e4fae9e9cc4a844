package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phobologic/gddocs/internal/config"
	"github.com/phobologic/gddocs/internal/render"
)

const (
	sentinelStart = "<!-- gddocs:start -->"
	sentinelEnd   = "<!-- gddocs:end -->"
)

// newTocCommand implements `gddocs toc`, which writes (or updates) the class
// table of contents in a Markdown file such as a project README.
func newTocCommand(root *generateOptions, stdout, stderr io.Writer) *cobra.Command {
	var (
		output string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "toc [flags] <file.json|dir>...",
		Short: "Write the class table of contents into a Markdown file",
		Long: `Write the table of contents of the documented classes into a Markdown file.
The list is wrapped in sentinel comments so it can be updated in place on
subsequent runs without touching surrounding content. Creates the file if it
does not exist.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Loader{File: root.configFile, Flags: cmd.Flags()}.Load()
			if err != nil {
				return err
			}
			logger := newLogger(stderr, cfg.Verbose, dryRun)

			_, classes, err := loadReference(args, cfg, logger)
			if err != nil {
				return err
			}
			r, err := render.New(classes, render.Options{}, logger)
			if err != nil {
				return err
			}

			existing, err := os.ReadFile(output)
			if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("reading %s: %w", output, err)
			}
			updated := applySection(string(existing), generateSection(r.TableOfContents()))

			if dryRun {
				_, _ = fmt.Fprint(stdout, updated)
				return nil
			}
			if err := os.WriteFile(output, []byte(updated), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			logger.Info("wrote table of contents", "file", output, "classes", classes.Len())
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "README.md", "Markdown file to update")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the updated file without modifying it")
	return cmd
}

// generateSection returns the sentinel-wrapped table of contents block.
func generateSection(toc []string) string {
	return sentinelStart + "\n" + strings.Join(toc, "\n") + "\n" + sentinelEnd
}

// applySection inserts section into content, replacing an existing sentinel
// block if present or appending if not.
func applySection(content, section string) string {
	start := strings.Index(content, sentinelStart)
	end := strings.Index(content, sentinelEnd)

	if start >= 0 && end > start {
		return content[:start] + section + content[end+len(sentinelEnd):]
	}

	if content == "" {
		return section + "\n"
	}

	// Append, ensuring a blank line separator.
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return content + "\n" + section + "\n"
}
