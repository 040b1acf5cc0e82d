package inventory

import (
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"time"

	"github.com/babarot/imgsort/internal/config"
	"github.com/docker/go-units"
	"github.com/gobwas/glob"
	"github.com/k1LoW/duration"
	"github.com/samber/lo"
)

// entry is a candidate file found in the target directory
type entry struct {
	name    string
	path    string
	size    int64
	modTime time.Time
}

// FilterOptions holds filtering configuration
type FilterOptions struct {
	Include config.IncludeConfig
	Exclude config.ExcludeConfig
}

// filter applies the include and exclude rules to entries
func filter(entries []entry, opts FilterOptions) []entry {
	// Filter by filename exclusions
	entries = rejectByNames(entries, opts.Exclude.Files)

	// Filter by patterns
	entries = rejectByPatterns(entries, opts.Exclude.Patterns)

	// Filter by globs
	entries = rejectByGlobs(entries, opts.Exclude.Globs)

	// Filter by size
	entries = rejectBySize(entries, opts.Exclude.Size)

	// Filter by modification time
	entries = filterByPeriod(entries, opts.Include.Period)

	return entries
}

func rejectByNames(entries []entry, names []string) []entry {
	if len(names) == 0 {
		return entries
	}
	return lo.Reject(entries, func(e entry, _ int) bool {
		return slices.Contains(names, e.name)
	})
}

func rejectByPatterns(entries []entry, patterns []string) []entry {
	if len(patterns) == 0 {
		return entries
	}
	res := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			slog.Warn("ignoring invalid exclude pattern", "pattern", pattern, "error", err)
			continue
		}
		res = append(res, re)
	}
	return lo.Reject(entries, func(e entry, _ int) bool {
		return lo.SomeBy(res, func(re *regexp.Regexp) bool { return re.MatchString(e.name) })
	})
}

func rejectByGlobs(entries []entry, globs []string) []entry {
	if len(globs) == 0 {
		return entries
	}
	gs := make([]glob.Glob, 0, len(globs))
	for _, g := range globs {
		compiled, err := glob.Compile(g)
		if err != nil {
			slog.Warn("ignoring invalid exclude glob", "glob", g, "error", err)
			continue
		}
		gs = append(gs, compiled)
	}
	return lo.Reject(entries, func(e entry, _ int) bool {
		return lo.SomeBy(gs, func(g glob.Glob) bool { return g.Match(e.name) })
	})
}

func rejectBySize(entries []entry, size config.SizeConfig) []entry {
	if size.Min == "" && size.Max == "" {
		return entries
	}
	return lo.Reject(entries, func(e entry, _ int) bool {
		if size.Min != "" {
			if min, err := units.FromHumanSize(size.Min); err == nil && e.size <= min {
				return true
			}
		}
		if size.Max != "" {
			if max, err := units.FromHumanSize(size.Max); err == nil && max <= e.size {
				return true
			}
		}
		return false
	})
}

func filterByPeriod(entries []entry, period int) []entry {
	if period <= 0 {
		return entries
	}

	d, err := duration.Parse(fmt.Sprintf("%d days", period))
	if err != nil {
		slog.Error("failed to parse duration", "error", err)
		return entries
	}

	return lo.Filter(entries, func(e entry, _ int) bool {
		return time.Since(e.modTime) < d
	})
}
