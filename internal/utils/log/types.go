package log

import (
	"strings"

	charmlog "github.com/charmbracelet/log"
)

type (
	Level  = charmlog.Level
	Styles = charmlog.Styles
)

const (
	DebugLevel = charmlog.DebugLevel
	InfoLevel  = charmlog.InfoLevel
	WarnLevel  = charmlog.WarnLevel
	ErrorLevel = charmlog.ErrorLevel
	FatalLevel = charmlog.FatalLevel
)

// ParseLevel converts a config level name, falling back to InfoLevel
func ParseLevel(s string) Level {
	l, err := charmlog.ParseLevel(strings.ToLower(s))
	if err != nil {
		return InfoLevel
	}
	return l
}
