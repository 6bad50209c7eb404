package execproc

import "time"

const (
	decodeErrorPolicyReplaceStringConstant = "replace"
	decodeErrorPolicyStrictStringConstant  = "strict"
	defaultEncodingNameStringConstant      = "utf-8"
)

// DecodeErrorPolicy selects how undecodable bytes in captured output are handled.
type DecodeErrorPolicy string

// Supported decode-error policies.
const (
	// DecodeErrorPolicyReplace substitutes the Unicode replacement character for undecodable bytes.
	DecodeErrorPolicyReplace DecodeErrorPolicy = DecodeErrorPolicy(decodeErrorPolicyReplaceStringConstant)
	// DecodeErrorPolicyStrict fails the execution when captured output cannot be decoded.
	DecodeErrorPolicyStrict DecodeErrorPolicy = DecodeErrorPolicy(decodeErrorPolicyStrictStringConstant)
)

// DefaultEncodingName is the encoding assumed when options leave it empty.
const DefaultEncodingName = defaultEncodingNameStringConstant

// ExecutionOptions configures a synchronous execution.
type ExecutionOptions struct {
	// WorkingDirectory overrides the child working directory when non-empty.
	WorkingDirectory string
	// EnvironmentVariables supplies variables for the child environment.
	EnvironmentVariables map[string]string
	// ReplaceEnvironment passes EnvironmentVariables alone instead of merging over the parent environment.
	ReplaceEnvironment bool
	// Timeout bounds execution; zero means wait indefinitely.
	Timeout time.Duration
	// CaptureOutput pipes stdout and stderr into the result; when false both streams are discarded.
	CaptureOutput bool
	// StandardInput supplies bytes written to the child standard input.
	StandardInput []byte
	// UseShell passes the command verbatim to a platform shell invocation instead of tokenizing it.
	UseShell bool
	// EncodingName selects the text encoding used to decode captured output.
	EncodingName string
	// DecodeErrorPolicy selects the handling of undecodable captured bytes.
	DecodeErrorPolicy DecodeErrorPolicy
	// RaiseOnFailure surfaces a non-zero exit as a ProcessExecutionError instead of only a result field.
	RaiseOnFailure bool
}

// DefaultExecutionOptions mirrors the defaults callers expect: captured UTF-8
// output with replacement decoding and auto-raise enabled.
func DefaultExecutionOptions() ExecutionOptions {
	return ExecutionOptions{
		CaptureOutput:     true,
		EncodingName:      DefaultEncodingName,
		DecodeErrorPolicy: DecodeErrorPolicyReplace,
		RaiseOnFailure:    true,
	}
}

// LaunchOptions configures a background launch. No timeout exists by design;
// the returned handle is entirely caller-managed.
type LaunchOptions struct {
	// WorkingDirectory overrides the child working directory when non-empty.
	WorkingDirectory string
	// EnvironmentVariables supplies variables for the child environment.
	EnvironmentVariables map[string]string
	// ReplaceEnvironment passes EnvironmentVariables alone instead of merging over the parent environment.
	ReplaceEnvironment bool
	// DetachSession places the child in its own session and process group, decoupling
	// its lifecycle and signal scope from the caller.
	DetachSession bool
	// DiscardOutput leaves the child stdout and stderr on the null device
	// instead of creating pipes, for fire-and-forget launches nobody drains.
	DiscardOutput bool
}
