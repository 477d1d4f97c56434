package prompt

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jjtools/jjprompt/internal/execshell"
	"github.com/jjtools/jjprompt/internal/jjrepo"
	"github.com/jjtools/jjprompt/internal/ui"
	"github.com/jjtools/jjprompt/internal/utils"
)

const (
	promptCommandUseConstant              = "prompt"
	promptCommandShortDescriptionConstant = "Render the jj workspace status line"
	promptCommandLongDescriptionConstant  = "prompt renders a single-line, optionally colored summary of the current jj workspace (change id, bookmarks, status markers, changed-file count, description) for interactive shell prompts."

	workingDirectoryFlagNameConstant  = "cwd"
	workingDirectoryFlagUsageConstant = "Override the working directory used to locate the repository."
	idLengthFlagNameConstant          = "id-length"
	idLengthFlagUsageConstant         = "Number of change-id characters to display."
	symbolFlagNameConstant            = "symbol"
	symbolFlagUsageConstant           = "Prefix symbol preceding the change id."
	noColorFlagNameConstant           = "no-color"
	noColorFlagUsageConstant          = "Disable ANSI colors."
	noFileCountFlagNameConstant       = "no-file-count"
	noFileCountFlagUsageConstant      = "Skip the changed-file count probe (faster)."

	executorCreationErrorTemplateConstant = "unable to construct shell executor: %w"
	managerCreationErrorTemplateConstant  = "unable to construct repository manager: %w"
	probeCreationErrorTemplateConstant    = "unable to construct file-count probe: %w"
	serviceCreationErrorTemplateConstant  = "unable to construct prompt service: %w"

	promptFailureExitCodeConstant    = 1
	promptFailedDebugMessageConstant = "prompt generation failed"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the prompt Cobra command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        func() CommandConfiguration
	HumanReadableLoggingProvider func() bool
	CommandRunner                execshell.CommandRunner
	WorkingDirectory             string
	Output                       io.Writer
}

// Build constructs the prompt command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:           promptCommandUseConstant,
		Short:         promptCommandShortDescriptionConstant,
		Long:          promptCommandLongDescriptionConstant,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE:          builder.RunPrompt,
	}

	RegisterFlags(command)

	return command, nil
}

// RegisterFlags declares the prompt rendering flags on the provided command.
// The root command registers the same set so running without a subcommand
// behaves identically to the prompt subcommand.
func RegisterFlags(command *cobra.Command) {
	command.Flags().String(workingDirectoryFlagNameConstant, "", workingDirectoryFlagUsageConstant)
	command.Flags().Uint(idLengthFlagNameConstant, DefaultIDLength, idLengthFlagUsageConstant)
	command.Flags().String(symbolFlagNameConstant, DefaultSymbol, symbolFlagUsageConstant)
	command.Flags().Bool(noColorFlagNameConstant, false, noColorFlagUsageConstant)
	command.Flags().Bool(noFileCountFlagNameConstant, false, noFileCountFlagUsageConstant)
}

// RunPrompt executes the full prompt pipeline and writes the resulting line,
// without a trailing newline, to the configured output. All pipeline
// failures collapse into a silent non-zero exit.
func (builder *CommandBuilder) RunPrompt(command *cobra.Command, arguments []string) error {
	logger := builder.resolveLogger()

	options, optionsError := builder.resolveOptions(command)
	if optionsError != nil {
		return optionsError
	}

	service, serviceError := builder.buildService(logger)
	if serviceError != nil {
		return serviceError
	}

	promptLine, generationError := service.GeneratePrompt(command.Context(), options)
	if generationError != nil {
		logger.Debug(promptFailedDebugMessageConstant, zap.Error(generationError))
		return utils.NewExitCodeError(promptFailureExitCodeConstant)
	}

	outputWriter := builder.Output
	if outputWriter == nil {
		outputWriter = utils.NewFlushingWriter(command.OutOrStdout())
	}
	if _, writeError := io.WriteString(outputWriter, promptLine); writeError != nil {
		return utils.NewExitCodeError(promptFailureExitCodeConstant)
	}

	return nil
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider != nil {
		if logger := builder.LoggerProvider(); logger != nil {
			return logger
		}
	}
	return zap.NewNop()
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider != nil {
		return builder.ConfigurationProvider()
	}
	return CommandConfiguration{IDLength: DefaultIDLength, Symbol: DefaultSymbol}
}

func (builder *CommandBuilder) resolveOptions(command *cobra.Command) (PromptOptions, error) {
	configuration := builder.resolveConfiguration()

	options := PromptOptions{
		WorkingDirectory:  configuration.WorkingDirectory,
		IDLength:          configuration.IDLength,
		Symbol:            configuration.Symbol,
		ColorDisabled:     configuration.ColorDisabled,
		FileCountDisabled: configuration.FileCountDisabled,
	}

	commandFlags := command.Flags()

	if commandFlags.Changed(workingDirectoryFlagNameConstant) {
		flagValue, flagError := commandFlags.GetString(workingDirectoryFlagNameConstant)
		if flagError != nil {
			return PromptOptions{}, flagError
		}
		options.WorkingDirectory = flagValue
	}

	if commandFlags.Changed(idLengthFlagNameConstant) {
		flagValue, flagError := commandFlags.GetUint(idLengthFlagNameConstant)
		if flagError != nil {
			return PromptOptions{}, flagError
		}
		options.IDLength = flagValue
	}

	if commandFlags.Changed(symbolFlagNameConstant) {
		flagValue, flagError := commandFlags.GetString(symbolFlagNameConstant)
		if flagError != nil {
			return PromptOptions{}, flagError
		}
		options.Symbol = flagValue
	}

	if commandFlags.Changed(noColorFlagNameConstant) {
		flagValue, flagError := commandFlags.GetBool(noColorFlagNameConstant)
		if flagError != nil {
			return PromptOptions{}, flagError
		}
		options.ColorDisabled = flagValue
	}

	if commandFlags.Changed(noFileCountFlagNameConstant) {
		flagValue, flagError := commandFlags.GetBool(noFileCountFlagNameConstant)
		if flagError != nil {
			return PromptOptions{}, flagError
		}
		options.FileCountDisabled = flagValue
	}

	if len(strings.TrimSpace(options.WorkingDirectory)) == 0 {
		options.WorkingDirectory = builder.resolveFallbackWorkingDirectory()
	}

	return options, nil
}

func (builder *CommandBuilder) resolveFallbackWorkingDirectory() string {
	if len(builder.WorkingDirectory) > 0 {
		return builder.WorkingDirectory
	}
	if workingDirectory, workingDirectoryError := os.Getwd(); workingDirectoryError == nil {
		return workingDirectory
	}
	return "."
}

func (builder *CommandBuilder) buildService(logger *zap.Logger) (*Service, error) {
	commandRunner := builder.CommandRunner
	if commandRunner == nil {
		commandRunner = execshell.NewOSCommandRunner()
	}

	var executor *execshell.ShellExecutor
	var executorError error
	if builder.HumanReadableLoggingProvider != nil && builder.HumanReadableLoggingProvider() {
		executor, executorError = execshell.NewShellExecutorWithObserver(logger, commandRunner, ui.NewConsoleCommandEventLogger(logger))
	} else {
		executor, executorError = execshell.NewShellExecutor(logger, commandRunner)
	}
	if executorError != nil {
		return nil, fmt.Errorf(executorCreationErrorTemplateConstant, executorError)
	}

	repositoryManager, managerError := jjrepo.NewRepositoryManager(executor)
	if managerError != nil {
		return nil, fmt.Errorf(managerCreationErrorTemplateConstant, managerError)
	}

	fileCountProbe, probeError := jjrepo.NewFileCountProbe(executor)
	if probeError != nil {
		return nil, fmt.Errorf(probeCreationErrorTemplateConstant, probeError)
	}

	service, serviceError := NewService(ServiceDependencies{
		Logger:            logger,
		RepositoryManager: repositoryManager,
		FileCountProbe:    fileCountProbe,
	})
	if serviceError != nil {
		return nil, fmt.Errorf(serviceCreationErrorTemplateConstant, serviceError)
	}

	return service, nil
}
