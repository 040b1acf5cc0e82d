package env

import (
	"os"
	"path/filepath"
)

const (
	defaultXDGConfigDirname = ".config"
	defaultXDGDataDirname   = ".local/share"
)

var (
	IMGSORT_CONFIG_PATH string

	IMGSORT_LOG_PATH string
)

func init() {
	// https://github.com/charmbracelet/log/issues/35
	os.Setenv("CLICOLOR_FORCE", "1")

	// Follow https://specifications.freedesktop.org/basedir-spec/latest/
	IMGSORT_CONFIG_PATH = os.Getenv("IMGSORT_CONFIG_PATH")
	if IMGSORT_CONFIG_PATH == "" {
		configDir := os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			configDir = filepath.Join(homeDir(), defaultXDGConfigDirname)
		}
		IMGSORT_CONFIG_PATH = filepath.Join(configDir, "imgsort", "config.yaml")
	}

	IMGSORT_LOG_PATH = os.Getenv("IMGSORT_LOG_PATH")
	if IMGSORT_LOG_PATH == "" {
		dataDir := os.Getenv("XDG_DATA_HOME")
		if dataDir == "" {
			dataDir = filepath.Join(homeDir(), defaultXDGDataDirname)
		}
		IMGSORT_LOG_PATH = filepath.Join(dataDir, "imgsort", "debug.log")
	}
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}
	return home
}
