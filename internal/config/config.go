package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/babarot/imgsort/internal/env"
	"github.com/go-playground/validator/v10"
	"github.com/muesli/reflow/indent"
	"gopkg.in/yaml.v2"
)

var validate *validator.Validate

type Config struct {
	Core    Core          `yaml:"core"`
	Include IncludeConfig `yaml:"include"`
	Exclude ExcludeConfig `yaml:"exclude"`
	Logging LoggingConfig `yaml:"logging"`
	UI      UI            `yaml:"ui"`
}

type Core struct {
	// Extensions lists the recognized image extensions, compared case-insensitively
	Extensions []string `yaml:"extensions" validate:"required,min=1,dive,validExt"`

	// ThumbDir is resolved against the target directory when relative
	ThumbDir string `yaml:"thumb_dir"`

	Backup       BackupConfig `yaml:"backup"`
	TempPrefix   string       `yaml:"temp_prefix" validate:"required,validTempPrefix"`
	MaxItems     int          `yaml:"max_items" validate:"gt=0"`
	SniffContent bool         `yaml:"sniff_content"`
	Confirm      bool         `yaml:"confirm"`
}

type BackupConfig struct {
	Dir  string `yaml:"dir" validate:"required"`
	File string `yaml:"file" validate:"required"`
}

type IncludeConfig struct {
	// Period keeps only images modified within the last N days; 0 keeps all
	Period int `yaml:"period" validate:"gte=0"`
}

type ExcludeConfig struct {
	Files    []string   `yaml:"files"`
	Patterns []string   `yaml:"patterns" validate:"dive,validRegexp"`
	Globs    []string   `yaml:"globs" validate:"dive,validGlob"`
	Size     SizeConfig `yaml:"size"`
}

type SizeConfig struct {
	Min string `yaml:"min" validate:"validSize"`
	Max string `yaml:"max" validate:"validSize"`
}

type LoggingConfig struct {
	Enabled  bool           `yaml:"enabled"`
	Level    string         `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Rotation RotationConfig `yaml:"rotation"`
}

type RotationConfig struct {
	MaxSize  string `yaml:"max_size" validate:"validSize"`
	MaxFiles int    `yaml:"max_files" validate:"gte=0"`
}

type UI struct {
	CellWidth   int           `yaml:"cell_width" validate:"gte=8,lte=64"`
	ExitMessage string        `yaml:"exit_message"`
	Preview     PreviewConfig `yaml:"preview"`
	Style       StyleConfig   `yaml:"style"`
}

type PreviewConfig struct {
	Enabled bool `yaml:"enabled"`
	Height  int  `yaml:"height" validate:"gte=0"`
}

type StyleConfig struct {
	Cursor   string `yaml:"cursor" validate:"validColor"`
	Grabbed  string `yaml:"grabbed" validate:"validColor"`
	Rank     string `yaml:"rank" validate:"validColor"`
	DropMark string `yaml:"drop_mark" validate:"validColor"`
}

type configError struct {
	configPath string
	err        error
}

func (e configError) Error() string {
	content, _ := yaml.Marshal(Default())
	return heredoc.Docf(`
		Couldn't read the "%s" config file.
		Please try again after creating it or specifying a valid config path.
		The recommended config path is %s (default).
		Example YAML file contents:
		---
		%s
		---
		Original error:
		%s
		`,
		e.configPath,
		env.IMGSORT_CONFIG_PATH,
		string(content),
		indent.String(e.err.Error(), 2),
	)
}

func (e configError) Unwrap() error { return e.err }

type parsingError struct {
	err error
}

func (e parsingError) Error() string {
	return fmt.Sprintf("failed to parse config: %v", e.err)
}

func (e parsingError) Unwrap() error { return e.err }

type parser struct{}

func initParser() parser {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.Split(fld.Tag.Get("yaml"), ",")[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation("validSize", validateSize)
	_ = validate.RegisterValidation("validExt", validateExt)
	_ = validate.RegisterValidation("validColor", validateColorCode)
	_ = validate.RegisterValidation("validTempPrefix", validateTempPrefix)
	_ = validate.RegisterValidation("validRegexp", validateRegexp)
	_ = validate.RegisterValidation("validGlob", validateGlob)

	return parser{}
}

func (p parser) ensureConfigFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil
	}

	slog.Warn("creating config file as it does not exist", "config-file", path)
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	content, err := yaml.Marshal(Default())
	if err != nil {
		return err
	}
	_, err = f.Write(content)
	return err
}

func (p parser) readConfigFile(path string) (Config, error) {
	// Start from defaults so that a partial file only overrides what it names
	cfg := *Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, configError{configPath: path, err: err}
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, Validate(cfg)
}

// Validate checks cfg against the struct tags
func Validate(cfg Config) error {
	if validate == nil {
		initParser()
	}
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("validation error: Field %s, %q is invalid", verrs[0].Namespace(), verrs[0].Value())
		}
		return err
	}
	return nil
}

// Parse reads the config at path. An empty path selects the default location,
// which is created with default contents when missing.
func Parse(path string) (Config, error) {
	p := initParser()

	configPath := path
	if configPath == "" {
		configPath = env.IMGSORT_CONFIG_PATH
		if err := p.ensureConfigFile(configPath); err != nil {
			return *Default(), parsingError{err: configError{configPath: configPath, err: err}}
		}
	}
	slog.Debug("config file found", "config-file", configPath)

	cfg, err := p.readConfigFile(configPath)
	if err != nil {
		return cfg, parsingError{err: err}
	}
	return cfg, nil
}
