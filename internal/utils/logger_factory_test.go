package utils_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/launchpath/cmdkit/internal/utils"
)

const (
	testUnsupportedLogLevelConstant  = "loud"
	testUnsupportedLogFormatConstant = "binary"
	testWriterLogMessageConstant     = "writer sink message"
)

func TestCreateLoggerRejectsUnsupportedSettings(testInstance *testing.T) {
	loggerFactory := utils.NewLoggerFactory()

	_, levelError := loggerFactory.CreateLogger(utils.LogLevel(testUnsupportedLogLevelConstant), utils.LogFormatConsole)
	require.Error(testInstance, levelError)
	require.Contains(testInstance, levelError.Error(), testUnsupportedLogLevelConstant)

	_, formatError := loggerFactory.CreateLogger(utils.LogLevelInfo, utils.LogFormat(testUnsupportedLogFormatConstant))
	require.Error(testInstance, formatError)
	require.Contains(testInstance, formatError.Error(), testUnsupportedLogFormatConstant)
}

func TestCreateLoggerBuildsForSupportedSettings(testInstance *testing.T) {
	loggerFactory := utils.NewLoggerFactory()

	for _, supportedLogLevel := range []utils.LogLevel{utils.LogLevelDebug, utils.LogLevelInfo, utils.LogLevelWarn, utils.LogLevelError} {
		for _, supportedLogFormat := range []utils.LogFormat{utils.LogFormatStructured, utils.LogFormatConsole} {
			createdLogger, creationError := loggerFactory.CreateLogger(supportedLogLevel, supportedLogFormat)
			require.NoError(testInstance, creationError)
			require.NotNil(testInstance, createdLogger)
		}
	}
}

func TestCreateLoggerForWriterEmitsToSuppliedWriter(testInstance *testing.T) {
	loggerFactory := utils.NewLoggerFactory()
	outputBuffer := &bytes.Buffer{}

	createdLogger, creationError := loggerFactory.CreateLoggerForWriter(utils.LogLevelDebug, utils.LogFormatConsole, outputBuffer)
	require.NoError(testInstance, creationError)

	createdLogger.Info(testWriterLogMessageConstant)
	require.NoError(testInstance, createdLogger.Sync())
	require.Contains(testInstance, outputBuffer.String(), testWriterLogMessageConstant)
}

func TestCreateLoggerForWriterHonorsLevelThreshold(testInstance *testing.T) {
	loggerFactory := utils.NewLoggerFactory()
	outputBuffer := &bytes.Buffer{}

	createdLogger, creationError := loggerFactory.CreateLoggerForWriter(utils.LogLevelError, utils.LogFormatConsole, outputBuffer)
	require.NoError(testInstance, creationError)

	createdLogger.Info(testWriterLogMessageConstant)
	require.NoError(testInstance, createdLogger.Sync())
	require.Empty(testInstance, outputBuffer.String())
}
