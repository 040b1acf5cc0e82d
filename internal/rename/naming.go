package rename

import (
	"fmt"
	"regexp"
	"strconv"
)

// rankPrefix matches a rank prefix left by an earlier commit. Single-digit
// prefixes ("3_c.jpg") are treated the same as two-digit ones.
var rankPrefix = regexp.MustCompile(`^\d{1,2}_(.+)$`)

// CleanName strips one leading rank prefix from name
func CleanName(name string) string {
	if m := rankPrefix.FindStringSubmatch(name); m != nil {
		return m[1]
	}
	return name
}

// FinalName is the committed basename of the item at the 1-based rank
func FinalName(rank int, original string) string {
	return fmt.Sprintf("%02d_%s", rank, CleanName(original))
}

// TempName is the quarantine basename of the item at the 0-based index.
// It embeds the run id and the original basename, so an interrupted commit
// can be finished from the directory listing alone.
func TempName(prefix, runID string, index int, original string) string {
	return fmt.Sprintf("%s%s_%d_%s", prefix, runID, index, original)
}

// TempEntry is a parsed quarantine name
type TempEntry struct {
	RunID    string
	Index    int
	Original string
}

// Rank returns the 1-based rank the entry is finalized to
func (e TempEntry) Rank() int {
	return e.Index + 1
}

type tempParser struct {
	re *regexp.Regexp
}

func newTempParser(prefix string) tempParser {
	// xid ids are 20 characters of base32hex
	return tempParser{
		re: regexp.MustCompile(`^` + regexp.QuoteMeta(prefix) + `([0-9a-v]{20})_(\d+)_(.+)$`),
	}
}

// Parse returns the entry encoded in name, if name is a quarantine name
func (p tempParser) Parse(name string) (TempEntry, bool) {
	m := p.re.FindStringSubmatch(name)
	if m == nil {
		return TempEntry{}, false
	}
	index, err := strconv.Atoi(m[2])
	if err != nil {
		return TempEntry{}, false
	}
	return TempEntry{RunID: m[1], Index: index, Original: m[3]}, true
}

// ParseTempName parses name against the given quarantine prefix
func ParseTempName(prefix, name string) (TempEntry, bool) {
	return newTempParser(prefix).Parse(name)
}
