package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/schollz/progressbar/v3"

	"github.com/phobologic/gddocs/internal/markdown"
)

// progressReporter is the part of a progress bar the writer drives.
type progressReporter interface {
	Add(n int) error
}

func newProgressBar(total int, w io.Writer) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("Writing documents"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionOnCompletion(func() {
			_, _ = fmt.Fprintln(w)
		}),
	)
}

// writeDocuments writes each document to dir, creating dir first.
func writeDocuments(dir string, docs []markdown.Document, bar progressReporter) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	for _, doc := range docs {
		path := filepath.Join(dir, doc.Filename())
		if err := os.WriteFile(path, []byte(doc.String()), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	return nil
}

// printDocuments writes every document to w, each preceded by its file name.
func printDocuments(w io.Writer, docs []markdown.Document) error {
	for i, doc := range docs {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "==> %s <==\n%s", doc.Filename(), doc.String()); err != nil {
			return err
		}
	}
	return nil
}

// checkDocuments prints a unified diff for every document that differs from
// its file in dir and returns errStale if any did.
func checkDocuments(w io.Writer, dir string, docs []markdown.Document) error {
	var stale []string
	for _, doc := range docs {
		path := filepath.Join(dir, doc.Filename())
		existing, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		generated := doc.String()
		if string(existing) == generated {
			continue
		}

		diff := difflib.UnifiedDiff{
			A:        difflib.SplitLines(string(existing)),
			B:        difflib.SplitLines(generated),
			FromFile: path,
			ToFile:   path + " (generated)",
			Context:  3,
		}
		text, err := difflib.GetUnifiedDiffString(diff)
		if err != nil {
			return fmt.Errorf("diffing %s: %w", path, err)
		}
		if _, err := io.WriteString(w, text); err != nil {
			return err
		}
		stale = append(stale, doc.Filename())
	}

	if len(stale) > 0 {
		return fmt.Errorf("%w: %d of %d documents differ: %v", errStale, len(stale), len(docs), stale)
	}
	return nil
}
