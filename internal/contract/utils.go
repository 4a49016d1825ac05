package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Tier label constants.
const (
	EliteValue  = "Elite"
	StrongValue = "Strong"
	FairValue   = "Fair"
	WeakValue   = "Weak"
)

// Color variables for console output.
var (
	EliteColor  = color.New(color.FgGreen, color.Bold)
	StrongColor = color.New(color.FgCyan, color.Bold)
	FairColor   = color.New(color.FgYellow)
	WeakColor   = color.New(color.FgRed)
	WinnerColor = color.New(color.FgGreen, color.Bold)
)

// GetColorLabel returns a colored tier label for console output (table).
func GetColorLabel(label string) string {
	switch label {
	case EliteValue:
		return EliteColor.Sprint(label)
	case StrongValue:
		return StrongColor.Sprint(label)
	case FairValue:
		return FairColor.Sprint(label)
	default:
		return WeakColor.Sprint(label)
	}
}

// SelectOutputFile returns the appropriate file handle for output.
// An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for the record cache.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".benchboard_cache.db"
	}
	return filepath.Join(homeDir, ".benchboard_cache.db")
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for run history.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".benchboard_history.db"
	}
	return filepath.Join(homeDir, ".benchboard_history.db")
}

// TruncateText shortens text to maxWidth runes with a trailing ellipsis.
// Requires maxWidth > 3 so there is room for the ellipsis and some content.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// SplitToken splits a comma-joined token into trimmed, non-empty parts.
func SplitToken(token string) []string {
	var out []string
	for p := range strings.SplitSeq(token, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
