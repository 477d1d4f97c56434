package prompt

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jjtools/jjprompt/internal/jjrepo"
	"github.com/jjtools/jjprompt/internal/utils"
)

const (
	detectCommandUseConstant              = "detect"
	detectCommandShortDescriptionConstant = "Exit 0 when inside a jj repository, 1 otherwise"
	detectCommandLongDescriptionConstant  = "detect reports, via its exit code alone, whether the working directory lies inside a jj repository. Nothing is printed in either case."

	detectFailureExitCodeConstant     = 1
	repositoryDetectedDebugMessage    = "repository detected"
	repositoryNotDetectedDebugMessage = "no repository detected"
	logFieldWorkingDirectoryConstant  = "working_directory"
	logFieldDetectedRootConstant      = "repository_root"
)

// DetectCommandBuilder assembles the detect Cobra command.
type DetectCommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider func() CommandConfiguration
	WorkingDirectory      string
}

// Build constructs the detect command.
func (builder *DetectCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:           detectCommandUseConstant,
		Short:         detectCommandShortDescriptionConstant,
		Long:          detectCommandLongDescriptionConstant,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE:          builder.runDetect,
	}

	command.Flags().String(workingDirectoryFlagNameConstant, "", workingDirectoryFlagUsageConstant)

	return command, nil
}

func (builder *DetectCommandBuilder) runDetect(command *cobra.Command, arguments []string) error {
	logger := builder.resolveLogger()

	workingDirectory, workingDirectoryError := builder.resolveWorkingDirectory(command)
	if workingDirectoryError != nil {
		return workingDirectoryError
	}

	repositoryRoot, discoveryError := jjrepo.FindRepositoryRoot(workingDirectory)
	if discoveryError != nil {
		logger.Debug(repositoryNotDetectedDebugMessage, zap.String(logFieldWorkingDirectoryConstant, workingDirectory))
		return utils.NewExitCodeError(detectFailureExitCodeConstant)
	}

	logger.Debug(
		repositoryDetectedDebugMessage,
		zap.String(logFieldWorkingDirectoryConstant, workingDirectory),
		zap.String(logFieldDetectedRootConstant, repositoryRoot),
	)

	return nil
}

func (builder *DetectCommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider != nil {
		if logger := builder.LoggerProvider(); logger != nil {
			return logger
		}
	}
	return zap.NewNop()
}

func (builder *DetectCommandBuilder) resolveWorkingDirectory(command *cobra.Command) (string, error) {
	commandFlags := command.Flags()
	if commandFlags.Changed(workingDirectoryFlagNameConstant) {
		flagValue, flagError := commandFlags.GetString(workingDirectoryFlagNameConstant)
		if flagError != nil {
			return "", flagError
		}
		if len(strings.TrimSpace(flagValue)) > 0 {
			return flagValue, nil
		}
	}

	if builder.ConfigurationProvider != nil {
		configuredDirectory := strings.TrimSpace(builder.ConfigurationProvider().WorkingDirectory)
		if len(configuredDirectory) > 0 {
			return configuredDirectory, nil
		}
	}

	if len(builder.WorkingDirectory) > 0 {
		return builder.WorkingDirectory, nil
	}

	if workingDirectory, workingDirectoryError := os.Getwd(); workingDirectoryError == nil {
		return workingDirectory, nil
	}

	return ".", nil
}
