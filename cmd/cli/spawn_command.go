package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/launchpath/cmdkit/internal/execproc"
	"github.com/launchpath/cmdkit/internal/platform"
)

const (
	spawnCommandUseConstant   = "spawn [flags] -- <executable> [arguments...]"
	spawnCommandShortConstant = "Launch a background process and print its pid without waiting"
	spawnCommandLongConstant  = "spawn starts the command and returns immediately. The child is not supervised; its lifecycle belongs to the caller. Use --detach to place it in its own session."

	detachFlagNameConstant  = "detach"
	detachFlagUsageConstant = "Detach the child into its own session and process group."

	spawnedProcessTemplateConstant = "%d\n"
)

func (application *Application) buildSpawnCommand() *cobra.Command {
	spawnCommand := &cobra.Command{
		Use:   spawnCommandUseConstant,
		Short: spawnCommandShortConstant,
		Long:  spawnCommandLongConstant,
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.executeSpawnCommand(command, arguments)
		},
	}

	spawnCommand.Flags().StringP(rawCommandFlagNameConstant, "c", "", rawCommandFlagUsageConstant)
	spawnCommand.Flags().Bool(detachFlagNameConstant, false, detachFlagUsageConstant)
	spawnCommand.Flags().String(workingDirectoryFlagNameConstant, "", workingDirectoryFlagUsageConstant)
	spawnCommand.Flags().StringArray(environmentFlagNameConstant, nil, environmentFlagUsageConstant)

	return spawnCommand
}

func (application *Application) executeSpawnCommand(command *cobra.Command, arguments []string) error {
	rawCommandValue, _ := command.Flags().GetString(rawCommandFlagNameConstant)
	commandSpecification, specificationError := buildCommandSpecification(arguments, rawCommandValue)
	if specificationError != nil {
		return specificationError
	}

	launchOptions, optionsError := application.resolveSpawnOptions(command.Flags())
	if optionsError != nil {
		return optionsError
	}
	// spawn never drains the pipes; the child writes to the null device.
	launchOptions.DiscardOutput = true

	backgroundLauncher, launcherError := execproc.NewBackgroundProcessLauncher(application.commandLogger(command), platform.Detect())
	if launcherError != nil {
		return launcherError
	}

	processHandle, launchError := backgroundLauncher.Launch(commandSpecification, launchOptions)
	if launchError != nil {
		return launchError
	}

	fmt.Fprintf(command.OutOrStdout(), spawnedProcessTemplateConstant, processHandle.ProcessIdentifier())
	return nil
}

func (application *Application) resolveSpawnOptions(commandFlags *pflag.FlagSet) (execproc.LaunchOptions, error) {
	spawnConfiguration := application.configuration.Commands.Spawn

	launchOptions := execproc.LaunchOptions{
		DetachSession:    spawnConfiguration.Detach,
		WorkingDirectory: spawnConfiguration.WorkingDirectory,
	}

	if commandFlags.Changed(detachFlagNameConstant) {
		detachValue, _ := commandFlags.GetBool(detachFlagNameConstant)
		launchOptions.DetachSession = detachValue
	}
	if commandFlags.Changed(workingDirectoryFlagNameConstant) {
		workingDirectoryValue, _ := commandFlags.GetString(workingDirectoryFlagNameConstant)
		launchOptions.WorkingDirectory = workingDirectoryValue
	}

	environmentAssignments, _ := commandFlags.GetStringArray(environmentFlagNameConstant)
	environmentVariables, environmentError := parseEnvironmentAssignments(environmentAssignments)
	if environmentError != nil {
		return execproc.LaunchOptions{}, environmentError
	}
	launchOptions.EnvironmentVariables = environmentVariables

	return launchOptions, nil
}
