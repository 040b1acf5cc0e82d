package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/babarot/imgsort/internal/core/types"
	"github.com/babarot/imgsort/internal/inventory"
	"github.com/babarot/imgsort/internal/order"
	"github.com/babarot/imgsort/internal/rename"
	"github.com/babarot/imgsort/internal/ui"
	"github.com/babarot/imgsort/internal/ui/table"
	"github.com/babarot/imgsort/internal/utils/log"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/samber/lo"
)

var errPendingRecovery = errors.New("files from an interrupted commit are still quarantined")

func (c CLI) Sort(dir string) error {
	slog.Debug("cli.sort started", "dir", dir)
	defer slog.Debug("cli.sort finished")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Held from discovery to commit so the pending check and the renames
	// see the same directory
	lock, err := lockDir(dir)
	if err != nil {
		return err
	}
	defer lock.release()

	inv, err := inventory.Load(ctx, inventory.OptionsFromConfig(c.config, dir, c.option.Thumbs))
	if err != nil {
		return fmt.Errorf("load %s: %w", dir, err)
	}
	if len(inv.Pending) > 0 {
		for _, name := range inv.Pending {
			fmt.Fprintf(os.Stderr, "%s %s\n", color.YellowString("pending:"), name)
		}
		return fmt.Errorf("%w: %d found, run with --recover first", errPendingRecovery, len(inv.Pending))
	}
	if len(inv.Items) == 0 {
		fmt.Printf("No images found in %s\n", inv.Dir)
		return nil
	}
	slog.Info("inventory loaded",
		"dir", inv.Dir,
		"items", len(inv.Items),
		"thumbs", inv.Thumbs(),
		"size", humanize.Bytes(uint64(inv.TotalSize())))

	col, err := order.New(inv.Items)
	if err != nil {
		return err
	}

	tx := rename.New(rename.Options{
		TargetDir:    inv.Dir,
		ThumbDir:     inv.ThumbDir,
		BackupDir:    c.config.Core.Backup.Dir,
		ManifestName: c.config.Core.Backup.File,
		TempPrefix:   c.config.Core.TempPrefix,
		MaxItems:     c.config.Core.MaxItems,
		RunID:        c.runID,
	})

	confirmed, err := c.arrange(col, inv)
	if err != nil {
		if errors.Is(err, ui.ErrInputCanceled) {
			return nil
		}
		return err
	}
	seq := col.Items()

	if c.option.DryRun {
		steps, err := tx.Plan(seq)
		if err != nil {
			return err
		}
		table.PrintPlan(os.Stdout, steps, table.PrintOptions{Size: inv.Size})
		return nil
	}

	if !confirmed && !c.confirm(len(seq)) {
		fmt.Println(c.config.UI.ExitMessage)
		return nil
	}

	slog.Debug("committing", "order", lo.Map(seq, func(i types.Item, _ int) string { return i.Name() }))
	res := tx.Execute(ctx, seq)
	return report(os.Stdout, res)
}

// arrange reorders col from --move specs, or in the grid when none are
// given. It reports whether the user already confirmed the commit.
func (c CLI) arrange(col *order.Collection, inv inventory.Inventory) (bool, error) {
	if len(c.option.Move) > 0 {
		moved, err := applyMoves(col, c.option.Move)
		if err != nil {
			return false, err
		}
		slog.Debug("moves applied", "specs", len(c.option.Move), "moved", moved)
		return false, nil
	}

	// A dry run without moves previews the current order
	if c.option.DryRun {
		return false, nil
	}

	confirm := c.config.Core.Confirm && !c.option.Yes
	out, err := ui.Run(col, &c.config, ui.Options{
		Title:   inv.Dir,
		Size:    inv.Size,
		Confirm: confirm,
	})
	if err != nil {
		return false, err
	}
	slog.Debug("grid closed", "moves", out.Moves)

	// The grid asked already, or asking was turned off
	return true, nil
}

func (c CLI) confirm(n int) bool {
	if c.option.Yes || !c.config.Core.Confirm {
		return true
	}
	return ui.Confirm(fmt.Sprintf("Rename %d %s in this order?", n, plural(n, "file")))
}

func report(w io.Writer, res rename.Result) error {
	for _, warning := range res.Warnings {
		fmt.Fprintf(w, "%s %s\n", color.YellowString("warning:"), warning)
	}

	if res.Success {
		fmt.Fprintf(w, "%s %d of %d %s. Original names saved to %s\n",
			color.GreenString("Renamed"),
			res.Renamed, res.Count, plural(res.Count, "image"),
			log.Highlight(res.ManifestPath),
		)
		return nil
	}

	var txErr *rename.TxError
	if !errors.As(res.Err, &txErr) || !txErr.Phase.Touched() {
		// Nothing was renamed
		return res.Err
	}

	fmt.Fprintf(w, "%s during %s. Original names are listed in %s\n",
		color.RedString("Commit failed"), txErr.Phase, log.Highlight(res.ManifestPath))
	if res.Partial() {
		fmt.Fprintf(w, "Finish it with %s, or undo the renames done so far:\n",
			color.CyanString("imgsort --recover DIR"))
		for _, cmd := range rename.Commands(res) {
			fmt.Fprintf(w, "  %s\n", cmd)
		}
	}
	return res.Err
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
