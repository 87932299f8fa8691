package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/covgate/schema"
)

// Verdict label constants.
const (
	PassValue = "Pass"
	WarnValue = "Warn"
	FailValue = "Fail"
)

// Color variables for console output.
var (
	PassColor = color.New(color.FgGreen, color.Bold)  // PassColor signals a clean gate.
	WarnColor = color.New(color.FgYellow)             // WarnColor signals caution, not bold.
	FailColor = color.New(color.FgRed, color.Bold)    // FailColor signals a blocked merge.
	InfoColor = color.New(color.FgCyan)               // InfoColor for informational labels.
)

// GetPlainLabel returns a plain text label for a verdict status. This is
// the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(status schema.VerdictStatus) string {
	switch status {
	case schema.FailStatus:
		return FailValue
	case schema.WarnStatus:
		return WarnValue
	default:
		return PassValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the
// appropriate color.
func GetColorLabel(status schema.VerdictStatus) string {
	text := GetPlainLabel(status)

	switch text {
	case FailValue:
		return FailColor.Sprint(text)
	case WarnValue:
		return WarnColor.Sprint(text)
	default: // "Pass"
		return PassColor.Sprint(text)
	}
}

// ShouldIgnore returns true if the given path matches any of the exclude
// patterns. It supports simple glob patterns (using filepath.Match) when
// the pattern contains wildcard characters (*, ?, [ ]). Patterns ending
// with '/' are treated as prefixes. Patterns starting with '.' are treated
// as suffix (extension) matches. A user can provide patterns like
// "vendor/", "node_modules/", "*.min.js".
func ShouldIgnore(path string, excludes []string) bool {
	for _, ex := range excludes {
		ex = strings.TrimSpace(ex)
		if ex == "" {
			continue
		}

		// If the pattern contains glob characters, try filepath.Match.
		if strings.ContainsAny(ex, "*?[") || strings.Contains(ex, "**") {
			pat := strings.ReplaceAll(ex, "**", "*")
			if ok, err := filepath.Match(pat, path); err == nil && ok {
				return true
			}
			// Also try matching against the base filename (e.g. *.min.js)
			if ok, err := filepath.Match(pat, filepath.Base(path)); err == nil && ok {
				return true
			}
			continue
		}

		// Handle prefix, suffix, or substring matches
		switch {
		case strings.HasSuffix(ex, "/"):
			if strings.HasPrefix(path, ex) {
				return true
			}
		case strings.HasPrefix(ex, "."):
			if strings.HasSuffix(path, ex) {
				return true
			}
		case strings.Contains(path, ex):
			return true
		}
	}
	return false
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	LogFatalCode(msg, err, 1)
}

// LogFatalCode logs an error and exits with the given code. Evaluation
// failures use code 2 so CI can tell "coverage regressed" apart from
// "the tool could not evaluate coverage".
func LogFatalCode(msg string, err error, code int) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(code)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for gate
// history storage.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".covgate_history.db"
	}
	return filepath.Join(homeDir, ".covgate_history.db")
}

// SelectOutputFile returns the appropriate file handle for output, based
// on the provided file path. It falls back to os.Stdout when no path is
// given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// TruncatePath truncates a file path to a maximum width with ellipsis
// prefix. Requires maxWidth > 3 to ensure there's space for both the "..."
// prefix and at least one character of content.
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
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
