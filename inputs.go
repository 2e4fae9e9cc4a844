package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/phobologic/gddocs/internal/config"
	"github.com/phobologic/gddocs/internal/discover"
	"github.com/phobologic/gddocs/internal/model"
	"github.com/phobologic/gddocs/internal/reference"
)

// loadReference reads every JSON input named by args into one collection.
// Decoding problems of all files are reported together.
func loadReference(args []string, cfg *config.Config, logger *slog.Logger) (*model.ProjectInfo, *model.Collection, error) {
	pathFilter, err := discover.NewFilter(cfg.Exclude.Paths)
	if err != nil {
		return nil, nil, fmt.Errorf("exclude: %w", err)
	}
	classFilter, err := discover.NewFilter(cfg.Exclude.Classes)
	if err != nil {
		return nil, nil, fmt.Errorf("exclude-class: %w", err)
	}

	files, err := discover.Inputs(args, pathFilter)
	if err != nil {
		return nil, nil, fmt.Errorf("discovering inputs: %w", err)
	}
	if len(files) == 0 {
		return nil, nil, fmt.Errorf("no JSON reference files found")
	}

	var (
		raw      []reference.Class
		projects []*model.ProjectInfo
		errs     []error
	)
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("reading %s: %w", path, err)
		}
		ref, err := reference.Decode(data)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			continue
		}
		logger.Debug("read reference", "file", path, "classes", len(ref.Classes))
		if ref.Skipped > 0 {
			logger.Debug("skipped classes without a name", "file", path, "count", ref.Skipped)
		}
		if ref.Project != nil {
			projects = append(projects, &model.ProjectInfo{
				Name:        ref.Project.Name,
				Description: ref.Project.Description,
				Version:     ref.Project.Version,
			})
		}
		raw = append(raw, ref.Classes...)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, nil, fmt.Errorf("decoding reference: %w", err)
	}

	classes := model.NewCollection(raw)
	if patterns := classFilter.Patterns(); len(patterns) > 0 {
		before := classes.Len()
		classes = classes.Without(classFilter)
		logger.Debug("excluded classes", "patterns", patterns, "count", before-classes.Len())
	}
	for _, cycle := range classes.Cycles() {
		logger.Warn("inheritance cycle", "classes", strings.Join(cycle, ", "))
	}

	return projectInfo(cfg.Project, projects...), classes, nil
}
