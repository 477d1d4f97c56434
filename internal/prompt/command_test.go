package prompt_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jjtools/jjprompt/internal/execshell"
	"github.com/jjtools/jjprompt/internal/prompt"
	"github.com/jjtools/jjprompt/internal/utils"
)

func newPromptCommandUnderTest(testInstance *testing.T, runner execshell.CommandRunner, outputBuffer *bytes.Buffer) *prompt.CommandBuilder {
	return &prompt.CommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return zap.NewNop()
		},
		ConfigurationProvider: func() prompt.CommandConfiguration {
			return prompt.CommandConfiguration{IDLength: prompt.DefaultIDLength, Symbol: prompt.DefaultSymbol}
		},
		CommandRunner: runner,
		Output:        outputBuffer,
	}
}

func TestRunPromptWritesLineWithoutTrailingNewline(testInstance *testing.T) {
	repositoryRoot := newRepositoryDirectory(testInstance)
	runner := &subcommandScriptedRunner{
		resultsBySubcommand: map[string]execshell.ExecutionResult{
			"log":  {StandardOutput: testFactsPayloadConstant},
			"diff": {StandardOutput: testDiffStatOutputConstant},
		},
	}
	outputBuffer := &bytes.Buffer{}
	builder := newPromptCommandUnderTest(testInstance, runner, outputBuffer)

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	command.SetArgs([]string{"--cwd", repositoryRoot, "--no-color"})
	require.NoError(testInstance, command.Execute())

	require.Equal(testInstance, "  zzqm main ~9 Add parser", outputBuffer.String())
}

func TestRunPromptFlagOverrides(testInstance *testing.T) {
	repositoryRoot := newRepositoryDirectory(testInstance)
	runner := &subcommandScriptedRunner{
		resultsBySubcommand: map[string]execshell.ExecutionResult{
			"log":  {StandardOutput: testFactsPayloadConstant},
			"diff": {StandardOutput: testDiffStatOutputConstant},
		},
	}
	outputBuffer := &bytes.Buffer{}
	builder := newPromptCommandUnderTest(testInstance, runner, outputBuffer)

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	command.SetArgs([]string{"--cwd", repositoryRoot, "--no-color", "--symbol", "±", "--id-length", "2", "--no-file-count"})
	require.NoError(testInstance, command.Execute())

	require.Equal(testInstance, "±zz main Add parser", outputBuffer.String())
	require.Len(testInstance, runner.executedCommands, 1)
}

func TestRunPromptFailsSilentlyOutsideRepository(testInstance *testing.T) {
	runner := &subcommandScriptedRunner{}
	outputBuffer := &bytes.Buffer{}
	builder := newPromptCommandUnderTest(testInstance, runner, outputBuffer)

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	command.SetArgs([]string{"--cwd", testInstance.TempDir()})
	executionError := command.Execute()

	exitCodeError := utils.ExitCodeError{}
	require.True(testInstance, errors.As(executionError, &exitCodeError))
	require.Equal(testInstance, 1, exitCodeError.Code)
	require.Empty(testInstance, outputBuffer.String())
	require.Empty(testInstance, runner.executedCommands)
}

func TestRunPromptFailsSilentlyWhenBackendUnavailable(testInstance *testing.T) {
	repositoryRoot := newRepositoryDirectory(testInstance)
	runner := &subcommandScriptedRunner{
		failuresBySubcommand: map[string]error{
			"log": errors.New("executable not found"),
		},
	}
	outputBuffer := &bytes.Buffer{}
	builder := newPromptCommandUnderTest(testInstance, runner, outputBuffer)

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	command.SetArgs([]string{"--cwd", repositoryRoot})
	executionError := command.Execute()

	exitCodeError := utils.ExitCodeError{}
	require.True(testInstance, errors.As(executionError, &exitCodeError))
	require.Equal(testInstance, 1, exitCodeError.Code)
	require.Empty(testInstance, outputBuffer.String())
}
