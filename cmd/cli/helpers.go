package cli

import (
	"fmt"
	"strings"

	"github.com/launchpath/cmdkit/internal/execproc"
)

const (
	environmentAssignmentSeparatorConstant       = "="
	environmentAssignmentPartCountConstant       = 2
	invalidEnvironmentAssignmentTemplateConstant = "invalid environment assignment %q: expected KEY=VALUE"
	missingCommandMessageConstant                = "no command supplied: pass arguments after -- or use --command"
	conflictingCommandInputsMessageConstant      = "either pass arguments after -- or use --command, not both"
)

// parseEnvironmentAssignments converts repeatable KEY=VALUE flag values into an environment mapping.
func parseEnvironmentAssignments(environmentAssignments []string) (map[string]string, error) {
	if len(environmentAssignments) == 0 {
		return nil, nil
	}

	environmentVariables := make(map[string]string, len(environmentAssignments))
	for _, environmentAssignment := range environmentAssignments {
		assignmentParts := strings.SplitN(environmentAssignment, environmentAssignmentSeparatorConstant, environmentAssignmentPartCountConstant)
		if len(assignmentParts) != environmentAssignmentPartCountConstant || len(assignmentParts[0]) == 0 {
			return nil, fmt.Errorf(invalidEnvironmentAssignmentTemplateConstant, environmentAssignment)
		}
		environmentVariables[assignmentParts[0]] = assignmentParts[1]
	}
	return environmentVariables, nil
}

// buildCommandSpecification selects between positional argument vectors and a raw command string.
func buildCommandSpecification(positionalArguments []string, rawCommand string) (execproc.CommandSpecification, error) {
	trimmedRawCommand := strings.TrimSpace(rawCommand)
	if len(positionalArguments) > 0 && len(trimmedRawCommand) > 0 {
		return execproc.CommandSpecification{}, fmt.Errorf(conflictingCommandInputsMessageConstant)
	}
	if len(positionalArguments) > 0 {
		return execproc.CommandFromArguments(positionalArguments...), nil
	}
	if len(trimmedRawCommand) > 0 {
		return execproc.CommandFromString(trimmedRawCommand), nil
	}
	return execproc.CommandSpecification{}, fmt.Errorf(missingCommandMessageConstant)
}
