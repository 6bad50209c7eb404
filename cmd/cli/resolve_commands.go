package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/launchpath/cmdkit/internal/platform"
	"github.com/launchpath/cmdkit/internal/resolve"
)

const (
	whichCommandUseConstant     = "which <executable>"
	whichCommandShortConstant   = "Resolve an executable name to its first match on the search path"
	searchPathFlagNameConstant  = "path"
	searchPathFlagUsageConstant = "Directory to search instead of PATH; repeatable, searched in order."

	existsCommandUseConstant        = "exists <executable>"
	existsCommandShortConstant      = "Check whether a command can be located"
	commandExistsOutputConstant     = "true"
	commandNotExistsOutputConstant  = "false"
	commandNotFoundTemplateConstant = "command %q not found"

	resolvedPathTemplateConstant = "%s\n"
	existenceTemplateConstant    = "%s\n"

	singleArgumentCountConstant = 1
)

func (application *Application) buildWhichCommand() *cobra.Command {
	whichCommand := &cobra.Command{
		Use:   whichCommandUseConstant,
		Short: whichCommandShortConstant,
		Args:  cobra.ExactArgs(singleArgumentCountConstant),
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.executeWhichCommand(command, arguments)
		},
	}
	whichCommand.Flags().StringArray(searchPathFlagNameConstant, nil, searchPathFlagUsageConstant)
	return whichCommand
}

func (application *Application) executeWhichCommand(command *cobra.Command, arguments []string) error {
	searchPaths, _ := command.Flags().GetStringArray(searchPathFlagNameConstant)

	executableResolver := resolve.NewExecutableResolver(platform.Detect())
	resolvedPath, resolveError := executableResolver.FindExecutable(arguments[0], searchPathsOrDefault(searchPaths))
	if resolveError != nil {
		return resolveError
	}

	fmt.Fprintf(command.OutOrStdout(), resolvedPathTemplateConstant, resolvedPath)
	return nil
}

func (application *Application) buildExistsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   existsCommandUseConstant,
		Short: existsCommandShortConstant,
		Args:  cobra.ExactArgs(singleArgumentCountConstant),
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.executeExistsCommand(command, arguments)
		},
	}
}

func (application *Application) executeExistsCommand(command *cobra.Command, arguments []string) error {
	executableResolver := resolve.NewExecutableResolver(platform.Detect())
	commandKnown := executableResolver.CommandExists(command.Context(), arguments[0])

	if commandKnown {
		fmt.Fprintf(command.OutOrStdout(), existenceTemplateConstant, commandExistsOutputConstant)
		return nil
	}

	fmt.Fprintf(command.OutOrStdout(), existenceTemplateConstant, commandNotExistsOutputConstant)
	return fmt.Errorf(commandNotFoundTemplateConstant, arguments[0])
}

// searchPathsOrDefault maps an empty flag list to the nil slice FindExecutable
// interprets as the PATH environment variable.
func searchPathsOrDefault(searchPaths []string) []string {
	if len(searchPaths) == 0 {
		return nil
	}
	return searchPaths
}
