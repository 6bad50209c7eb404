package resolve

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/launchpath/cmdkit/internal/platform"
)

const (
	searchPathEnvironmentVariableNameConstant = "PATH"
	executableNotFoundErrorTemplateConstant   = "%w: %s"
)

// ErrExecutableNotFound reports that every search directory and candidate filename combination was exhausted.
var ErrExecutableNotFound = errors.New("executable not found")

// CommandProber abstracts the platform-native locate-command helper so existence checks remain testable.
type CommandProber interface {
	// Probe reports whether the named command is known to the lookup tool.
	Probe(executionContext context.Context, lookupToolName string, commandName string) (bool, error)
}

// ExecutableResolver locates executables using a platform capability value.
type ExecutableResolver struct {
	capabilities platform.Capabilities
	prober       CommandProber
}

// NewExecutableResolver constructs a resolver backed by the operating system lookup tool.
func NewExecutableResolver(platformCapabilities platform.Capabilities) *ExecutableResolver {
	return NewExecutableResolverWithProber(platformCapabilities, osCommandProber{})
}

// NewExecutableResolverWithProber constructs a resolver using the supplied prober.
func NewExecutableResolverWithProber(platformCapabilities platform.Capabilities, commandProber CommandProber) *ExecutableResolver {
	return &ExecutableResolver{capabilities: platformCapabilities, prober: commandProber}
}

// FindExecutable returns the first path under the search directories holding a
// candidate file for the executable name. A nil search list means the PATH
// environment variable split by the platform list separator. Matching is
// first-by-directory then first-by-candidate-name; no scoring is applied.
func (resolver *ExecutableResolver) FindExecutable(executableName string, searchPaths []string) (string, error) {
	resolvedSearchPaths := searchPaths
	if resolvedSearchPaths == nil {
		resolvedSearchPaths = filepath.SplitList(os.Getenv(searchPathEnvironmentVariableNameConstant))
	}

	for _, searchDirectory := range resolvedSearchPaths {
		for _, extensionCandidate := range resolver.capabilities.ExecutableExtensionCandidates {
			candidatePath := filepath.Join(searchDirectory, executableName+extensionCandidate)
			candidateInformation, statError := os.Stat(candidatePath)
			if statError != nil {
				continue
			}
			if !candidateInformation.Mode().IsRegular() {
				continue
			}
			return candidatePath, nil
		}
	}

	return "", fmt.Errorf(executableNotFoundErrorTemplateConstant, ErrExecutableNotFound, executableName)
}

// CommandExists reports whether the named command can be located. The
// platform-native lookup tool is consulted first; when the tool itself cannot
// run, the check degrades to the PATH scan performed by FindExecutable.
func (resolver *ExecutableResolver) CommandExists(executionContext context.Context, commandName string) bool {
	commandKnown, probeError := resolver.prober.Probe(executionContext, resolver.capabilities.CommandLookupTool, commandName)
	if probeError == nil {
		return commandKnown
	}

	_, findError := resolver.FindExecutable(commandName, nil)
	return findError == nil
}

// osCommandProber invokes the lookup tool as a child process.
type osCommandProber struct{}

// Probe implements CommandProber using os/exec.
func (osCommandProber) Probe(executionContext context.Context, lookupToolName string, commandName string) (bool, error) {
	lookupInvocation := exec.CommandContext(executionContext, lookupToolName, commandName)
	lookupOutput, lookupError := lookupInvocation.Output()
	if lookupError != nil {
		exitError := &exec.ExitError{}
		if errors.As(lookupError, &exitError) {
			return false, nil
		}
		return false, lookupError
	}
	return len(bytes.TrimSpace(lookupOutput)) > 0, nil
}
