package execproc

import "github.com/launchpath/cmdkit/internal/tokenize"

// CommandSpecification describes a command either as an already-explicit
// ordered argument vector or as a single raw string awaiting tokenization.
// Explicit argument vectors are the injection-safe path and are never
// re-split.
type CommandSpecification struct {
	// Raw holds the un-tokenized command string when no explicit vector was supplied.
	Raw string
	// Arguments holds the explicit argument vector, executable name first.
	Arguments []string
}

// CommandFromString builds a specification around a raw command string.
func CommandFromString(rawCommand string) CommandSpecification {
	return CommandSpecification{Raw: rawCommand}
}

// CommandFromArguments builds a specification around an explicit argument vector.
func CommandFromArguments(argumentList ...string) CommandSpecification {
	duplicatedArguments := make([]string, len(argumentList))
	copy(duplicatedArguments, argumentList)
	return CommandSpecification{Arguments: duplicatedArguments}
}

// IsExplicit reports whether the specification carries an explicit argument vector.
func (specification CommandSpecification) IsExplicit() bool {
	return specification.Arguments != nil
}

// String renders the original command representation for diagnostics.
func (specification CommandSpecification) String() string {
	if specification.IsExplicit() {
		return tokenize.JoinArguments(specification.Arguments)
	}
	return specification.Raw
}
