// Package discover expands command-line arguments into the reference dump
// files to read.
package discover

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	ignore "github.com/sabhiram/go-gitignore"
)

const jsonExt = ".json"

var skipDirs = map[string]struct{}{
	"node_modules": {},
	".git":         {},
	".hg":          {},
	".svn":         {},
	".godot":       {},
	".import":      {},
	"build":        {},
	"dist":         {},
	"export":       {},
}

// Inputs returns the JSON files named by args. Directories are walked
// recursively; explicit file arguments are kept only when they end in .json.
// Paths matched by exclude are dropped. Each file is listed once, in argument
// order, with files of a directory sorted by path.
func Inputs(args []string, exclude *Filter) ([]string, error) {
	seen := make(map[string]struct{})
	var results []string

	add := func(path string) {
		if exclude.ExcludedPath(path) {
			return
		}
		if _, dup := seen[path]; dup {
			return
		}
		seen[path] = struct{}{}
		results = append(results, path)
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("reading input %s: %w", arg, err)
		}
		if !info.IsDir() {
			if IsJSON(arg) {
				add(filepath.Clean(arg))
			}
			continue
		}

		files, err := Files(arg)
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", arg, err)
		}
		for _, rel := range files {
			add(filepath.Join(arg, rel))
		}
	}
	return results, nil
}

// IsJSON reports whether path has a .json extension, ignoring case.
func IsJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), jsonExt)
}

// Files returns the JSON files under root, relative to root and sorted.
// Hidden entries, well-known build directories and ignored files are skipped.
func Files(root string) ([]string, error) {
	gitFiles := gitLsFiles(root)
	var gi *ignore.GitIgnore
	if gitFiles == nil {
		gi = loadGitignore(root)
	}

	var results []string

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // skip errors
		}

		name := d.Name()

		if d.IsDir() {
			if path == root {
				return nil
			}
			if _, skip := skipDirs[name]; skip || strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(name, ".") {
			return nil
		}

		// Skip symlinks
		if d.Type()&os.ModeSymlink != 0 {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}

		if gitFiles != nil {
			if _, ok := gitFiles[filepath.ToSlash(rel)]; !ok {
				return nil
			}
		} else if gi != nil && gi.MatchesPath(rel) {
			return nil
		}

		if !IsJSON(name) {
			return nil
		}

		results = append(results, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(results)
	return results, nil
}

func gitLsFiles(root string) map[string]struct{} {
	gitDir := filepath.Join(root, ".git")
	info, err := os.Stat(gitDir)
	if err != nil || !info.IsDir() {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", "ls-files", "--cached", "--others", "--exclude-standard")
	cmd.Dir = root
	out, err := cmd.Output()
	if err != nil {
		return nil
	}

	files := make(map[string]struct{})
	for _, line := range strings.Split(strings.TrimRight(string(out), "\n"), "\n") {
		if line != "" {
			files[line] = struct{}{}
		}
	}
	return files
}

func loadGitignore(root string) *ignore.GitIgnore {
	path := filepath.Join(root, ".gitignore")
	gi, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		return nil
	}
	return gi
}
