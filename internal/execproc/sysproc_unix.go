//go:build !windows

package execproc

import (
	"os"
	"os/exec"
	"syscall"
)

// configureProcessGroup places the child in its own process group so a timeout
// kill reaps the whole tree instead of leaving orphaned grandchildren.
func configureProcessGroup(executable *exec.Cmd) {
	if executable.SysProcAttr == nil {
		executable.SysProcAttr = &syscall.SysProcAttr{}
	}
	executable.SysProcAttr.Setpgid = true
}

// configureSessionDetachment makes the child a new session leader, detaching
// its lifecycle and signal scope from the launching process.
func configureSessionDetachment(executable *exec.Cmd) {
	if executable.SysProcAttr == nil {
		executable.SysProcAttr = &syscall.SysProcAttr{}
	}
	executable.SysProcAttr.Setsid = true
}

// terminateProcessTree force-kills the child process group. The negative pid
// addresses every process in the group.
func terminateProcessTree(executable *exec.Cmd) error {
	if executable.Process == nil {
		return nil
	}
	return syscall.Kill(-executable.Process.Pid, syscall.SIGKILL)
}

// signalGracefulTermination asks the child to terminate.
func signalGracefulTermination(childProcess *os.Process) error {
	return childProcess.Signal(syscall.SIGTERM)
}
