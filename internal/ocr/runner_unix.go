//go:build !windows

package ocr

import (
	"os"
	"os/exec"
	"syscall"
)

// terminate asks the engine to exit.
func terminate(p *os.Process) error {
	return p.Signal(syscall.SIGTERM)
}

func configureProcess(*exec.Cmd) {}
