package utils

import "context"

type commandContextKey int

const configurationFilePathContextKey commandContextKey = iota

// CommandContextAccessor reads and writes CLI invocation metadata carried in
// command contexts. Subcommands use it to report which configuration file
// produced the settings they ran with.
type CommandContextAccessor struct{}

// NewCommandContextAccessor constructs a CommandContextAccessor instance.
func NewCommandContextAccessor() CommandContextAccessor {
	return CommandContextAccessor{}
}

// WithConfigurationFilePath records the resolved configuration file path in the returned context.
func (accessor CommandContextAccessor) WithConfigurationFilePath(parentContext context.Context, configurationFilePath string) context.Context {
	if parentContext == nil {
		parentContext = context.Background()
	}
	return context.WithValue(parentContext, configurationFilePathContextKey, configurationFilePath)
}

// ConfigurationFilePath reports the configuration file path recorded in the context, when present.
func (accessor CommandContextAccessor) ConfigurationFilePath(executionContext context.Context) (string, bool) {
	if executionContext == nil {
		return "", false
	}
	configurationFilePath, configurationFilePathPresent := executionContext.Value(configurationFilePathContextKey).(string)
	return configurationFilePath, configurationFilePathPresent
}
