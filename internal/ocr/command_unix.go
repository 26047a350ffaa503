//go:build !windows

package ocr

import "github.com/google/shlex"

func nicePrefix(nice int) []string {
	if nice == 0 {
		return nil
	}
	return niceArgs(nice)
}

// splitConfig tokenizes config with POSIX shell quoting rules.
func splitConfig(config string) ([]string, error) {
	return shlex.Split(config)
}
