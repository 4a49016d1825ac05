package webapi

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/lumberjack"
	"github.com/rs/zerolog"
)

// NewLogger builds the server logger. An empty file logs to stderr; otherwise
// the file is rotated by size.
func NewLogger(level, file string) (zerolog.Logger, error) {
	if level == "" {
		level = "info"
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}

	var out io.Writer = os.Stderr
	if file != "" {
		if strings.HasPrefix(file, "~") {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return zerolog.Nop(), err
			}
			file = filepath.Join(homeDir, file[1:])
		}
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return zerolog.Nop(), err
		}
		out = &lumberjack.Logger{
			Filename:   file,
			MaxSize:    2,  // megabytes
			MaxBackups: 3,  // number of files
			MaxAge:     60, // days
		}
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}
