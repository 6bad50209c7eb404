package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/launchpath/cmdkit/internal/utils"
)

const (
	applicationNameConstant             = "cmdkit"
	applicationShortDescriptionConstant = "Command-line interface for safe external process execution"
	applicationLongDescriptionConstant  = "cmdkit runs external commands with timeouts, captures their output into structured results, resolves executables on PATH, and launches detached background processes."

	configFileFlagNameConstant  = "config"
	configFileFlagUsageConstant = "Optional path to a configuration file (YAML)."
	logLevelFlagNameConstant    = "log-level"
	logLevelFlagUsageConstant   = "Override the configured log level."
	logFormatFlagNameConstant   = "log-format"
	logFormatFlagUsageConstant  = "Override the configured log format (structured or console)."

	environmentPrefixConstant              = "CMDKIT"
	configurationNameConstant              = "config"
	configurationTypeConstant              = "yaml"
	defaultConfigurationSearchPathConstant = "."

	configurationLoadErrorTemplateConstant = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant    = "unable to create logger: %w"

	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFileFieldConstant          = "config_file"
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common   ApplicationCommonConfiguration   `mapstructure:"common"`
	Commands ApplicationCommandConfigurations `mapstructure:"commands"`
}

// ApplicationCommonConfiguration stores logging configuration shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// ApplicationCommandConfigurations holds per-subcommand defaults.
type ApplicationCommandConfigurations struct {
	Run   RunCommandConfiguration   `mapstructure:"run"`
	Spawn SpawnCommandConfiguration `mapstructure:"spawn"`
}

// RunCommandConfiguration stores defaults for the run subcommand.
type RunCommandConfiguration struct {
	Timeout          time.Duration `mapstructure:"timeout"`
	Shell            bool          `mapstructure:"shell"`
	CaptureOutput    bool          `mapstructure:"capture_output"`
	AllowFailure     bool          `mapstructure:"allow_failure"`
	Encoding         string        `mapstructure:"encoding"`
	StrictDecode     bool          `mapstructure:"strict_decode"`
	WorkingDirectory string        `mapstructure:"working_directory"`
}

// SpawnCommandConfiguration stores defaults for the spawn subcommand.
type SpawnCommandConfiguration struct {
	Detach           bool   `mapstructure:"detach"`
	WorkingDirectory string `mapstructure:"working_directory"`
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand            *cobra.Command
	configurationLoader    *utils.ConfigurationLoader
	loggerFactory          *utils.LoggerFactory
	logger                 *zap.Logger
	configuration          ApplicationConfiguration
	configurationMetadata  utils.LoadedConfiguration
	configurationFilePath  string
	logLevelFlagValue      string
	logFormatFlagValue     string
	commandContextAccessor utils.CommandContextAccessor
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		[]string{defaultConfigurationSearchPathConstant},
	)
	configurationLoader.SetEmbeddedConfiguration([]byte(defaultConfigurationContentConstant))

	application := &Application{
		configurationLoader:    configurationLoader,
		loggerFactory:          utils.NewLoggerFactory(),
		logger:                 zap.NewNop(),
		commandContextAccessor: utils.NewCommandContextAccessor(),
	}

	rootCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
	}

	rootCommand.PersistentFlags().StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	rootCommand.PersistentFlags().StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", logLevelFlagUsageConstant)
	rootCommand.PersistentFlags().StringVar(&application.logFormatFlagValue, logFormatFlagNameConstant, "", logFormatFlagUsageConstant)

	rootCommand.AddCommand(application.buildRunCommand())
	rootCommand.AddCommand(application.buildWhichCommand())
	rootCommand.AddCommand(application.buildExistsCommand())
	rootCommand.AddCommand(application.buildSpawnCommand())

	application.rootCommand = rootCommand
	return application
}

// RootCommand exposes the assembled Cobra root command.
func (application *Application) RootCommand() *cobra.Command {
	return application.rootCommand
}

// Execute runs the application and flushes the logger before returning.
func (application *Application) Execute() error {
	executionError := application.rootCommand.Execute()
	_ = application.logger.Sync()
	return executionError
}

// Execute assembles a fresh application instance and runs it.
func Execute() error {
	return NewApplication().Execute()
}

// commandLogger returns the application logger annotated with the
// configuration file recorded in the command context, so every log entry a
// subcommand emits identifies the settings source it ran with.
func (application *Application) commandLogger(command *cobra.Command) *zap.Logger {
	configurationFilePath, configurationFilePathPresent := application.commandContextAccessor.ConfigurationFilePath(command.Context())
	if !configurationFilePathPresent || len(configurationFilePath) == 0 {
		return application.logger
	}
	return application.logger.With(zap.String(configurationFileFieldConstant, configurationFilePath))
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	loadedConfiguration := ApplicationConfiguration{}
	configurationMetadata, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, &loadedConfiguration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	if len(application.logLevelFlagValue) > 0 {
		loadedConfiguration.Common.LogLevel = application.logLevelFlagValue
	}
	if len(application.logFormatFlagValue) > 0 {
		loadedConfiguration.Common.LogFormat = application.logFormatFlagValue
	}

	createdLogger, loggerError := application.loggerFactory.CreateLogger(
		utils.LogLevel(loadedConfiguration.Common.LogLevel),
		utils.LogFormat(loadedConfiguration.Common.LogFormat),
	)
	if loggerError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerError)
	}

	application.configuration = loadedConfiguration
	application.configurationMetadata = configurationMetadata
	application.logger = createdLogger

	commandContext := application.commandContextAccessor.WithConfigurationFilePath(command.Context(), configurationMetadata.ConfigFileUsed)
	command.SetContext(commandContext)

	application.logger.Debug(configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, loadedConfiguration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, loadedConfiguration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, configurationMetadata.ConfigFileUsed),
	)
	return nil
}
