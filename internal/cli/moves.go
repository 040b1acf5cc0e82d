package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/babarot/imgsort/internal/core/types"
	"github.com/babarot/imgsort/internal/order"
)

var errInvalidMoveSpec = errors.New("invalid move spec")

// parseMove reads a SRC:TGT[:before|after] spec with 1-based positions.
// Without a side the item lands at position TGT: after the target when
// moving forward, before it when moving backward.
func parseMove(spec string) (types.MoveRequest, error) {
	parts := strings.Split(spec, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return types.MoveRequest{}, fmt.Errorf("%w %q: want SRC:TGT[:before|after]", errInvalidMoveSpec, spec)
	}

	src, err := position(parts[0])
	if err != nil {
		return types.MoveRequest{}, fmt.Errorf("%w %q: source: %v", errInvalidMoveSpec, spec, err)
	}
	tgt, err := position(parts[1])
	if err != nil {
		return types.MoveRequest{}, fmt.Errorf("%w %q: target: %v", errInvalidMoveSpec, spec, err)
	}

	req := types.MoveRequest{
		SourceIndex: src,
		TargetIndex: tgt,
		InsertAfter: src < tgt,
	}
	if len(parts) == 3 {
		switch strings.ToLower(parts[2]) {
		case "before", "b":
			req.InsertAfter = false
		case "after", "a":
			req.InsertAfter = true
		default:
			return types.MoveRequest{}, fmt.Errorf("%w %q: side must be before or after", errInvalidMoveSpec, spec)
		}
	}
	return req, nil
}

func position(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, fmt.Errorf("position %d is not 1-based", n)
	}
	return n - 1, nil
}

// applyMoves runs every spec against col in order; each spec sees the
// sequence left by the previous one.
func applyMoves(col *order.Collection, specs []string) (int, error) {
	moved := 0
	for _, spec := range specs {
		req, err := parseMove(spec)
		if err != nil {
			return moved, err
		}
		to, err := col.Move(req)
		if err != nil {
			return moved, fmt.Errorf("move %s: %w", spec, err)
		}
		if to == req.SourceIndex {
			slog.Debug("move is a no-op", "spec", spec)
			continue
		}
		slog.Debug("moved", "spec", spec, "from", req.SourceIndex, "to", to)
		moved++
	}
	return moved, nil
}
