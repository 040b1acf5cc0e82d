package rename

import (
	"fmt"

	"al.essio.dev/pkg/shellescape"
)

// Commands returns shell commands that undo the renames of res, newest
// first. "mv -n" never overwrites, so running them twice is harmless.
func Commands(res Result) []string {
	return undo(res.Moves)
}

// RecoverCommands is Commands for the moves made by Recover
func RecoverCommands(res RecoverResult) []string {
	return undo(res.Moves)
}

func undo(moves []Move) []string {
	cmds := make([]string, 0, len(moves))
	for i := len(moves) - 1; i >= 0; i-- {
		m := moves[i]
		cmds = append(cmds, fmt.Sprintf("mv -n -- %s %s",
			shellescape.Quote(m.Dst), shellescape.Quote(m.Src)))
	}
	return cmds
}
