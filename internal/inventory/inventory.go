// Package inventory discovers the images of a directory and the thumbnails
// that go with them.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/babarot/imgsort/internal/config"
	"github.com/babarot/imgsort/internal/core/types"
	"github.com/babarot/imgsort/internal/rename"
	"github.com/gabriel-vasile/mimetype"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// Options controls discovery
type Options struct {
	Dir string

	// ThumbDir is resolved against Dir when relative. Empty disables
	// thumbnail lookup.
	ThumbDir string

	// Extensions are compared case-insensitively
	Extensions []string

	// TempPrefix marks quarantine files left by an interrupted commit
	TempPrefix string

	Filter FilterOptions

	// Sniff drops files whose content is not an image, whatever their extension
	Sniff bool
}

// OptionsFromConfig builds Options for dir from the user's configuration.
// A non-empty thumbDir overrides the configured one.
func OptionsFromConfig(cfg config.Config, dir, thumbDir string) Options {
	if thumbDir == "" {
		thumbDir = cfg.Core.ThumbDir
	}
	return Options{
		Dir:        dir,
		ThumbDir:   thumbDir,
		Extensions: cfg.Core.Extensions,
		TempPrefix: cfg.Core.TempPrefix,
		Filter: FilterOptions{
			Include: cfg.Include,
			Exclude: cfg.Exclude,
		},
		Sniff: cfg.Core.SniffContent,
	}
}

// Inventory is the result of a discovery
type Inventory struct {
	Dir      string
	ThumbDir string // absolute, empty when thumbnails are disabled
	Items    []types.Item

	// Pending lists quarantine files of an interrupted commit, in Dir and
	// in ThumbDir. They are not part of Items.
	Pending []string

	sizes map[types.ItemID]int64
}

// Size returns the size in bytes of the full-resolution file of id
func (inv Inventory) Size(id types.ItemID) int64 {
	return inv.sizes[id]
}

// TotalSize returns the combined size of every item
func (inv Inventory) TotalSize() int64 {
	return lo.Sum(lo.Values(inv.sizes))
}

// Thumbs returns the number of items with a thumbnail
func (inv Inventory) Thumbs() int {
	return lo.CountBy(inv.Items, func(i types.Item) bool { return i.HasThumb() })
}

// Load lists the images of opts.Dir in lexicographic order and assigns them
// ids 1..N in that order.
func Load(ctx context.Context, opts Options) (Inventory, error) {
	dir, err := filepath.Abs(opts.Dir)
	if err != nil {
		return Inventory{}, err
	}
	fi, err := os.Stat(dir)
	if err != nil {
		return Inventory{}, err
	}
	if !fi.IsDir() {
		return Inventory{}, fmt.Errorf("%s: not a directory", dir)
	}

	inv := Inventory{Dir: dir, sizes: make(map[types.ItemID]int64)}
	if opts.ThumbDir != "" {
		inv.ThumbDir = opts.ThumbDir
		if !filepath.IsAbs(inv.ThumbDir) {
			inv.ThumbDir = filepath.Join(dir, inv.ThumbDir)
		}
		inv.ThumbDir = filepath.Clean(inv.ThumbDir)
		if fi, err := os.Stat(inv.ThumbDir); err != nil || !fi.IsDir() {
			slog.Debug("thumbnail directory not found", "dir", inv.ThumbDir)
			inv.ThumbDir = ""
		} else if inv.ThumbDir == dir {
			// Every image would be its own thumbnail
			slog.Debug("thumbnail directory is the target directory, ignoring", "dir", inv.ThumbDir)
			inv.ThumbDir = ""
		}
	}

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return inv, err
	}
	if inv.ThumbDir != "" && opts.TempPrefix != "" {
		pending, err := pendingThumbs(dir, inv.ThumbDir, opts.TempPrefix)
		if err != nil {
			return inv, err
		}
		inv.Pending = append(inv.Pending, pending...)
	}

	exts := lo.Map(opts.Extensions, func(ext string, _ int) string { return strings.ToLower(ext) })

	var entries []entry
	for _, de := range dirEntries {
		name := de.Name()
		switch {
		case de.IsDir():
			continue
		case opts.TempPrefix != "" && strings.HasPrefix(name, opts.TempPrefix):
			inv.Pending = append(inv.Pending, name)
			continue
		case strings.HasPrefix(name, "."):
			continue
		case !slices.Contains(exts, strings.ToLower(filepath.Ext(name))):
			continue
		}
		info, err := de.Info()
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return inv, err
		}
		if !info.Mode().IsRegular() {
			continue
		}
		entries = append(entries, entry{
			name:    name,
			path:    filepath.Join(dir, name),
			size:    info.Size(),
			modTime: info.ModTime(),
		})
	}

	entries = filter(entries, opts.Filter)

	if opts.Sniff {
		entries, err = sniff(ctx, entries)
		if err != nil {
			return inv, err
		}
	}

	slices.SortFunc(entries, func(a, b entry) int { return strings.Compare(a.name, b.name) })

	inv.Items = make([]types.Item, len(entries))
	for i, e := range entries {
		id := types.ItemID(i + 1)
		inv.Items[i] = types.Item{
			ID:        id,
			FullPath:  e.path,
			ThumbPath: findThumb(inv.ThumbDir, e.name, e.path),
		}
		inv.sizes[id] = e.size
	}

	slog.Info("inventory loaded",
		"dir", dir,
		"thumbs", inv.ThumbDir,
		"items", len(inv.Items),
		"with_thumb", inv.Thumbs(),
		"pending", len(inv.Pending))
	return inv, nil
}

// pendingThumbs lists the quarantined thumbnails of an interrupted commit,
// relative to dir when thumbDir lies below it.
func pendingThumbs(dir, thumbDir, prefix string) ([]string, error) {
	entries, err := os.ReadDir(thumbDir)
	if err != nil {
		return nil, err
	}
	var pending []string
	for _, de := range entries {
		if de.IsDir() || !strings.HasPrefix(de.Name(), prefix) {
			continue
		}
		path := filepath.Join(thumbDir, de.Name())
		if rel, err := filepath.Rel(dir, path); err == nil && !strings.HasPrefix(rel, "..") {
			path = rel
		}
		pending = append(pending, path)
	}
	return pending, nil
}

// findThumb looks for the thumbnail of name in dir: first under the same
// name, then under the name without its rank prefix. The image at self is
// never its own thumbnail.
func findThumb(dir, name, self string) string {
	if dir == "" {
		return ""
	}
	candidates := lo.Uniq([]string{name, rename.CleanName(name)})
	for _, c := range candidates {
		path := filepath.Join(dir, c)
		if path == filepath.Clean(self) {
			continue
		}
		if fi, err := os.Stat(path); err == nil && fi.Mode().IsRegular() {
			return path
		}
	}
	return ""
}

// sniff drops entries whose content is not an image
func sniff(ctx context.Context, entries []entry) ([]entry, error) {
	keep := make([]bool, len(entries))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.NumCPU())
	for i, e := range entries {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			mtype, err := mimetype.DetectFile(e.path)
			if err != nil {
				slog.Warn("cannot detect file type", "path", e.path, "error", err)
				return nil
			}
			if !strings.HasPrefix(mtype.String(), "image/") {
				slog.Debug("skipping non-image file", "path", e.path, "mimetype", mtype.String())
				return nil
			}
			keep[i] = true
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return lo.Filter(entries, func(_ entry, i int) bool { return keep[i] }), nil
}
