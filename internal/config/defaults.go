package config

// Default returns a Config populated with default values
func Default() *Config {
	return &Config{
		Core: Core{
			Extensions: []string{".jpg", ".jpeg", ".png", ".webp"},
			ThumbDir:   "thumbs",
			Backup: BackupConfig{
				Dir:  "_backup_original_names",
				File: "original_names.txt",
			},
			TempPrefix:   "_tmp_",
			MaxItems:     10000,
			SniffContent: false,
			Confirm:      true,
		},
		Include: IncludeConfig{
			Period: 0,
		},
		Exclude: ExcludeConfig{
			Files: []string{
				".DS_Store",
			},
			Patterns: []string{},
			Globs:    []string{},
			Size: SizeConfig{
				Min: "",
				Max: "",
			},
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "debug",
			Rotation: RotationConfig{
				MaxSize:  "10MB",
				MaxFiles: 3,
			},
		},
		UI: UI{
			CellWidth:   24,
			ExitMessage: "bye!",
			Preview: PreviewConfig{
				Enabled: true,
				Height:  12,
			},
			Style: StyleConfig{
				Cursor:   "#AD58B4",
				Grabbed:  "#FF007F",
				Rank:     "#2196F3",
				DropMark: "#5FB458",
			},
		},
	}
}
