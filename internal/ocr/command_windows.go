//go:build windows

package ocr

import (
	"errors"
	"strings"

	"golang.org/x/sys/windows"
)

var errUnbalancedQuotes = errors.New("unbalanced quotes")

// nicePrefix is a no-op: Windows has no nice(1).
func nicePrefix(int) []string {
	return nil
}

// splitConfig tokenizes config with Windows command line rules.
func splitConfig(config string) ([]string, error) {
	if strings.Count(config, `"`)%2 != 0 {
		return nil, errUnbalancedQuotes
	}
	return windows.DecomposeCommandLine(config)
}
