package platform

import "runtime"

const (
	windowsOperatingSystemNameConstant = "windows"

	posixShellExecutableConstant   = "/bin/sh"
	posixShellCommandFlagConstant  = "-c"
	posixCommandLookupToolConstant = "which"

	windowsShellExecutableConstant   = "cmd.exe"
	windowsShellCommandFlagConstant  = "/C"
	windowsCommandLookupToolConstant = "where"

	bareExecutableExtensionConstant = ""
)

var windowsExecutableExtensionCandidates = []string{
	bareExecutableExtensionConstant,
	".exe",
	".bat",
	".cmd",
}

var posixExecutableExtensionCandidates = []string{bareExecutableExtensionConstant}

// Capabilities describes the process execution facilities of an operating system.
// Instances are immutable values; consumers receive them explicitly instead of
// consulting process-wide global state.
type Capabilities struct {
	// OperatingSystem holds the runtime.GOOS style identifier the value was built for.
	OperatingSystem string
	// UsesWindowsPathSemantics reports whether executables are associated with extensions.
	UsesWindowsPathSemantics bool
	// ExecutableExtensionCandidates lists the filename suffixes tried during PATH resolution, bare name first.
	ExecutableExtensionCandidates []string
	// ShellExecutable names the command interpreter used for shell-mode execution.
	ShellExecutable string
	// ShellCommandFlag is the interpreter flag introducing the command string.
	ShellCommandFlag string
	// CommandLookupTool names the native locate-command helper.
	CommandLookupTool string
	// SupportsQuoteAwareTokenization reports whether the platform has native shell quoting rules for splitting.
	SupportsQuoteAwareTokenization bool
	// SupportsSessionDetachment reports whether children can be decoupled from
	// the caller's session, via setsid on POSIX or a new process group on Windows.
	SupportsSessionDetachment bool
}

// Detect builds the capability value for the operating system the process runs on.
func Detect() Capabilities {
	return ForOperatingSystem(runtime.GOOS)
}

// ForOperatingSystem builds the capability value for the named operating system.
func ForOperatingSystem(operatingSystemName string) Capabilities {
	if operatingSystemName == windowsOperatingSystemNameConstant {
		return Capabilities{
			OperatingSystem:                operatingSystemName,
			UsesWindowsPathSemantics:       true,
			ExecutableExtensionCandidates:  cloneExtensionCandidates(windowsExecutableExtensionCandidates),
			ShellExecutable:                windowsShellExecutableConstant,
			ShellCommandFlag:               windowsShellCommandFlagConstant,
			CommandLookupTool:              windowsCommandLookupToolConstant,
			SupportsQuoteAwareTokenization: false,
			SupportsSessionDetachment:      true,
		}
	}

	return Capabilities{
		OperatingSystem:                operatingSystemName,
		UsesWindowsPathSemantics:       false,
		ExecutableExtensionCandidates:  cloneExtensionCandidates(posixExecutableExtensionCandidates),
		ShellExecutable:                posixShellExecutableConstant,
		ShellCommandFlag:               posixShellCommandFlagConstant,
		CommandLookupTool:              posixCommandLookupToolConstant,
		SupportsQuoteAwareTokenization: true,
		SupportsSessionDetachment:      true,
	}
}

func cloneExtensionCandidates(extensionCandidates []string) []string {
	duplicatedCandidates := make([]string, len(extensionCandidates))
	copy(duplicatedCandidates, extensionCandidates)
	return duplicatedCandidates
}
