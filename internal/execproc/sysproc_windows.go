//go:build windows

package execproc

import (
	"os"
	"os/exec"
	"syscall"
)

// configureProcessGroup is a no-op on Windows; termination targets the direct child.
func configureProcessGroup(executable *exec.Cmd) {}

// configureSessionDetachment starts the child in a new process group, the
// closest Windows equivalent of session detachment.
func configureSessionDetachment(executable *exec.Cmd) {
	if executable.SysProcAttr == nil {
		executable.SysProcAttr = &syscall.SysProcAttr{}
	}
	executable.SysProcAttr.CreationFlags |= syscall.CREATE_NEW_PROCESS_GROUP
}

// terminateProcessTree force-kills the direct child.
func terminateProcessTree(executable *exec.Cmd) error {
	if executable.Process == nil {
		return nil
	}
	return executable.Process.Kill()
}

// signalGracefulTermination force-kills the child; Windows offers no portable termination signal.
func signalGracefulTermination(childProcess *os.Process) error {
	return childProcess.Kill()
}
