package snapshots

import (
	"fmt"
	"path/filepath"
	"regexp"
)

const historyDir = "history"

var namePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_.-]{0,127}$`)

// ValidName reports whether name is safe to use as an output file stem.
func ValidName(name string) bool {
	return namePattern.MatchString(name) && filepath.Ext(name) != ".json"
}

// OutputPath builds the path of the latest output for name.
func OutputPath(basePath, name string) string {
	return filepath.Join(basePath, fmt.Sprintf("%s.json", name))
}

// HistoryPath builds the path of the dated copy of an output.
func HistoryPath(basePath, name, date string) string {
	return filepath.Join(basePath, historyDir, name, fmt.Sprintf("%s.json", date))
}
