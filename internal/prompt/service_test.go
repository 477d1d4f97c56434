package prompt_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jjtools/jjprompt/internal/execshell"
	"github.com/jjtools/jjprompt/internal/jjrepo"
	"github.com/jjtools/jjprompt/internal/prompt"
)

const (
	testFactsPayloadConstant   = "zzqmxtsmwwql\nzz\nmain\nfalse\nfalse\nAdd parser"
	testDiffStatOutputConstant = "internal/parser.go | 40 ++++\n9 files changed, 40 insertions(+)\n"
)

// subcommandScriptedRunner replays a scripted result per jj subcommand.
type subcommandScriptedRunner struct {
	resultsBySubcommand  map[string]execshell.ExecutionResult
	failuresBySubcommand map[string]error
	executedCommands     []execshell.ShellCommand
}

func (runner *subcommandScriptedRunner) Run(executionContext context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error) {
	runner.executedCommands = append(runner.executedCommands, command)

	subcommand := ""
	if len(command.Details.Arguments) > 0 {
		subcommand = command.Details.Arguments[0]
	}

	if runnerFailure, failureScripted := runner.failuresBySubcommand[subcommand]; failureScripted {
		return execshell.ExecutionResult{}, runnerFailure
	}

	return runner.resultsBySubcommand[subcommand], nil
}

func newRepositoryDirectory(testInstance *testing.T) string {
	repositoryRoot := testInstance.TempDir()
	require.NoError(testInstance, os.Mkdir(filepath.Join(repositoryRoot, ".jj"), 0o755))
	return repositoryRoot
}

func newServiceUnderTest(testInstance *testing.T, runner execshell.CommandRunner) *prompt.Service {
	executor, executorError := execshell.NewShellExecutor(zap.NewNop(), runner)
	require.NoError(testInstance, executorError)

	repositoryManager, managerError := jjrepo.NewRepositoryManager(executor)
	require.NoError(testInstance, managerError)

	fileCountProbe, probeError := jjrepo.NewFileCountProbe(executor)
	require.NoError(testInstance, probeError)

	service, serviceError := prompt.NewService(prompt.ServiceDependencies{
		Logger:            zap.NewNop(),
		RepositoryManager: repositoryManager,
		FileCountProbe:    fileCountProbe,
	})
	require.NoError(testInstance, serviceError)

	return service
}

func TestNewServiceValidatesDependencies(testInstance *testing.T) {
	_, missingLoggerError := prompt.NewService(prompt.ServiceDependencies{})
	require.Error(testInstance, missingLoggerError)

	_, missingManagerError := prompt.NewService(prompt.ServiceDependencies{Logger: zap.NewNop()})
	require.Error(testInstance, missingManagerError)
}

func TestGeneratePromptRendersWorkspaceFacts(testInstance *testing.T) {
	repositoryRoot := newRepositoryDirectory(testInstance)
	runner := &subcommandScriptedRunner{
		resultsBySubcommand: map[string]execshell.ExecutionResult{
			"log":  {StandardOutput: testFactsPayloadConstant},
			"diff": {StandardOutput: testDiffStatOutputConstant},
		},
	}
	service := newServiceUnderTest(testInstance, runner)

	promptLine, generationError := service.GeneratePrompt(context.Background(), prompt.PromptOptions{
		WorkingDirectory: repositoryRoot,
		IDLength:         4,
		Symbol:           "  ",
		ColorDisabled:    true,
	})

	require.NoError(testInstance, generationError)
	require.Equal(testInstance, "  zzqm main ~9 Add parser", promptLine)
	require.Len(testInstance, runner.executedCommands, 2)
}

func TestGeneratePromptFailsOutsideRepository(testInstance *testing.T) {
	runner := &subcommandScriptedRunner{}
	service := newServiceUnderTest(testInstance, runner)

	promptLine, generationError := service.GeneratePrompt(context.Background(), prompt.PromptOptions{
		WorkingDirectory: testInstance.TempDir(),
		IDLength:         4,
	})

	require.Error(testInstance, generationError)
	require.Empty(testInstance, promptLine)
	require.Empty(testInstance, runner.executedCommands)
}

func TestGeneratePromptFailsWhenFactsQueryFails(testInstance *testing.T) {
	repositoryRoot := newRepositoryDirectory(testInstance)
	runner := &subcommandScriptedRunner{
		resultsBySubcommand: map[string]execshell.ExecutionResult{
			"log": {ExitCode: 1, StandardError: "no working copy"},
		},
	}
	service := newServiceUnderTest(testInstance, runner)

	promptLine, generationError := service.GeneratePrompt(context.Background(), prompt.PromptOptions{
		WorkingDirectory: repositoryRoot,
		IDLength:         4,
	})

	require.Error(testInstance, generationError)
	require.Empty(testInstance, promptLine)
}

func TestGeneratePromptDegradesWhenProbeFails(testInstance *testing.T) {
	repositoryRoot := newRepositoryDirectory(testInstance)
	runner := &subcommandScriptedRunner{
		resultsBySubcommand: map[string]execshell.ExecutionResult{
			"log":  {StandardOutput: testFactsPayloadConstant},
			"diff": {ExitCode: 1},
		},
	}
	service := newServiceUnderTest(testInstance, runner)

	promptLine, generationError := service.GeneratePrompt(context.Background(), prompt.PromptOptions{
		WorkingDirectory: repositoryRoot,
		IDLength:         4,
		ColorDisabled:    true,
	})

	require.NoError(testInstance, generationError)
	require.Equal(testInstance, "zzqm main Add parser", promptLine)
	require.False(testInstance, strings.Contains(promptLine, "~"))
}

func TestGeneratePromptSkipsProbeWhenDisabled(testInstance *testing.T) {
	repositoryRoot := newRepositoryDirectory(testInstance)
	runner := &subcommandScriptedRunner{
		resultsBySubcommand: map[string]execshell.ExecutionResult{
			"log": {StandardOutput: testFactsPayloadConstant},
		},
	}
	service := newServiceUnderTest(testInstance, runner)

	promptLine, generationError := service.GeneratePrompt(context.Background(), prompt.PromptOptions{
		WorkingDirectory:  repositoryRoot,
		IDLength:          4,
		ColorDisabled:     true,
		FileCountDisabled: true,
	})

	require.NoError(testInstance, generationError)
	require.Equal(testInstance, "zzqm main Add parser", promptLine)
	require.Len(testInstance, runner.executedCommands, 1)
}
