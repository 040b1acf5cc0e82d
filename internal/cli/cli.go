package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/babarot/imgsort/internal/config"
	"github.com/babarot/imgsort/internal/env"
	"github.com/babarot/imgsort/internal/utils/debug"
	"github.com/babarot/imgsort/internal/utils/log"
	"github.com/jessevdk/go-flags"
	"github.com/rs/xid"
)

type Option struct {
	Thumbs  string   `long:"thumbs" description:"Thumbnail directory, relative to DIR unless absolute" value-name:"DIR"`
	Move    []string `short:"m" long:"move" description:"Apply a move without the grid (1-based, repeatable)" value-name:"SRC:TGT[:before|after]"`
	DryRun  bool     `short:"n" long:"dry-run" description:"Print the rename plan and exit"`
	Yes     bool     `short:"y" long:"yes" description:"Skip the confirmation prompt"`
	Recover bool     `long:"recover" description:"Finish a commit that was interrupted"`
	Config  string   `long:"config" description:"Path to config file" default:""`

	Meta MetaOption `group:"Meta Options"`
}

type MetaOption struct {
	Version bool   `short:"V" long:"version" description:"Show version"`
	Debug   string `long:"debug" description:"View debug logs (default: \"full\")" optional-value:"full" optional:"yes" choice:"full" choice:"live"`
}

type CLI struct {
	version Version
	option  Option
	config  config.Config
	runID   string
}

var runID = sync.OnceValue(func() string {
	id := xid.New().String()
	return id
})

func Run(v Version) error {
	var opt Option
	parser := flags.NewParser(&opt, flags.Default)
	parser.Name = v.AppName
	parser.Usage = "[options] DIR"
	args, err := parser.Parse()
	if err != nil {
		if flags.WroteHelp(err) {
			return nil
		}
		return err
	}

	cfg, err := config.Parse(opt.Config)
	if err != nil {
		return err
	}

	logger := log.New(
		log.UseOutputFunc(logOutput(cfg.Logging)),
		log.UseLevel(log.ParseLevel(cfg.Logging.Level)),
		log.UseReportCaller(true),
		log.UseReportTimestamp(true),
		log.UseTimeFormat(time.Kitchen),
		log.AsDefault(),
	)
	slog.SetDefault(logger.With("run_id", runID()))

	defer slog.Debug("main function finished\n\n\n")
	slog.Debug("main function started", "version", v.Version, "revision", v.Revision, "buildDate", v.BuildDate)

	cli := CLI{
		version: v,
		option:  opt,
		config:  cfg,
		runID:   runID(),
	}

	if err := cli.Run(args); err != nil {
		slog.Error("exit", "error", fmt.Errorf("cli.run failed: %w", err))
		return err
	}
	return nil
}

// logOutput opens the rotating log file. Logging disabled in the config
// sends everything to io.Discard.
func logOutput(cfg config.LoggingConfig) func() (io.Writer, error) {
	return func() (io.Writer, error) {
		if !cfg.Enabled {
			return io.Discard, nil
		}
		if err := os.MkdirAll(filepath.Dir(env.IMGSORT_LOG_PATH), 0755); err != nil {
			return nil, err
		}
		return log.NewRotateWriter(env.IMGSORT_LOG_PATH, cfg.Rotation.MaxSize, cfg.Rotation.MaxFiles)
	}
}

func (c CLI) Run(args []string) error {
	switch {
	case c.option.Meta.Version:
		fmt.Fprint(os.Stdout, c.version.Print())
		return nil

	case c.option.Meta.Debug != "":
		return debug.Logs(os.Stdout, env.IMGSORT_LOG_PATH, c.config.Logging, c.option.Meta.Debug == "live")
	}

	dir, err := targetDir(args)
	if err != nil {
		return err
	}

	if c.option.Recover {
		return c.Recover(dir)
	}
	return c.Sort(dir)
}

func targetDir(args []string) (string, error) {
	switch len(args) {
	case 0:
		return "", errors.New("too few arguments: DIR is required")
	case 1:
		return args[0], nil
	default:
		return "", fmt.Errorf("too many arguments: %q", args[1:])
	}
}
