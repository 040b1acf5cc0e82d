package debug

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/babarot/imgsort/internal/config"
	"github.com/mattn/go-isatty"
	"github.com/nxadm/tail"
)

var errLoggingDisabled = errors.New("logging is not enabled in config: set logging.enabled to true")

// Logs prints the log file at path. With live set, only new entries are shown
// and the file is followed while stdout is a terminal.
func Logs(w io.Writer, path string, cfg config.LoggingConfig, live bool) error {
	if live {
		return tailLiveLogs(w, path, cfg)
	}
	return showExistingLogs(w, path, cfg)
}

func tailLiveLogs(w io.Writer, path string, cfg config.LoggingConfig) error {
	if !cfg.Enabled {
		return errLoggingDisabled
	}

	shouldFollow := isatty.IsTerminal(os.Stdout.Fd())
	t, err := tail.TailFile(path, tail.Config{
		ReOpen: shouldFollow,
		Follow: shouldFollow,
		Poll:   true,
		Logger: tail.DiscardingLogger,
		Location: &tail.SeekInfo{
			Offset: 0,
			Whence: io.SeekEnd,
		},
	})
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("log file does not exist: try running some commands with logging enabled")
		}
		return err
	}

	for line := range t.Lines {
		fmt.Fprintln(w, line.Text)
	}
	return nil
}

func showExistingLogs(w io.Writer, path string, cfg config.LoggingConfig) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			if !cfg.Enabled {
				return errLoggingDisabled
			}
			return fmt.Errorf("no log file exists yet: try running some commands first")
		}
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fmt.Fprintln(w, scanner.Text())
	}
	return scanner.Err()
}
