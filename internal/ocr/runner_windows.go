//go:build windows

package ocr

import (
	"os"
	"os/exec"
	"syscall"
)

// terminate kills the engine; Windows has no SIGTERM.
func terminate(p *os.Process) error {
	return p.Kill()
}

// configureProcess keeps the engine from opening a console window.
func configureProcess(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{HideWindow: true}
}
