package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/babarot/imgsort/internal/inventory"
	"github.com/babarot/imgsort/internal/rename"
	"github.com/fatih/color"
)

// Recover moves the quarantined files of an interrupted commit in dir to
// their final names.
func (c CLI) Recover(dir string) error {
	slog.Debug("cli.recover started", "dir", dir)
	defer slog.Debug("cli.recover finished")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	lock, err := lockDir(dir)
	if err != nil {
		return err
	}
	defer lock.release()

	// Discovery resolves the directories the same way a commit does
	inv, err := inventory.Load(ctx, inventory.OptionsFromConfig(c.config, dir, c.option.Thumbs))
	if err != nil {
		return fmt.Errorf("load %s: %w", dir, err)
	}

	tx := rename.New(rename.Options{
		TargetDir:    inv.Dir,
		ThumbDir:     inv.ThumbDir,
		BackupDir:    c.config.Core.Backup.Dir,
		ManifestName: c.config.Core.Backup.File,
		TempPrefix:   c.config.Core.TempPrefix,
	})
	res, err := tx.Recover(ctx)
	var originals map[string]string
	if res.Recovered() > 0 {
		originals = originalNames(tx.ManifestPath())
	}
	printRecovery(os.Stdout, inv.Dir, res, originals)
	if err != nil {
		if res.Recovered() > 0 {
			fmt.Fprintln(os.Stdout, "Undo the files recovered so far with:")
			for _, cmd := range rename.RecoverCommands(res) {
				fmt.Fprintf(os.Stdout, "  %s\n", cmd)
			}
		}
		return fmt.Errorf("recover: %w", err)
	}
	if len(res.Collisions) > 0 {
		return fmt.Errorf("%d %s could not be recovered: %w",
			len(res.Collisions), plural(len(res.Collisions), "file"), rename.ErrNameCollision)
	}
	return nil
}

// originalNames maps final basenames to the names recorded in the manifest
// of the interrupted commit.
func originalNames(path string) map[string]string {
	entries, err := rename.ReadManifest(path)
	if err != nil {
		slog.Warn("cannot read manifest", "path", path, "error", err)
		return nil
	}
	names := make(map[string]string, len(entries))
	for _, e := range entries {
		names[rename.FinalName(e.Rank, e.Original)] = e.Original
	}
	return names
}

func printRecovery(w io.Writer, dir string, res rename.RecoverResult, originals map[string]string) {
	if len(res.RunIDs) == 0 {
		fmt.Fprintf(w, "Nothing to recover in %s\n", dir)
		return
	}
	for _, collision := range res.Collisions {
		fmt.Fprintf(w, "%s %s\n", color.YellowString("skipped:"), collision)
	}
	fmt.Fprintf(w, "%s %d %s from %s %s\n",
		color.GreenString("Recovered"),
		res.Recovered(), plural(res.Recovered(), "file"),
		plural(len(res.RunIDs), "run"), strings.Join(res.RunIDs, ", "),
	)
	for _, move := range res.Moves {
		if filepath.Dir(move.Dst) != dir {
			continue
		}
		name := filepath.Base(move.Dst)
		if original, ok := originals[name]; ok && original != name {
			fmt.Fprintf(w, "  %s (was %s)\n", name, original)
		}
	}
}
