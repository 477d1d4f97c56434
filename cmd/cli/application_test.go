package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jjtools/jjprompt/internal/utils"
)

func newRepositoryDirectory(testInstance *testing.T) string {
	repositoryRoot := testInstance.TempDir()
	require.NoError(testInstance, os.Mkdir(filepath.Join(repositoryRoot, ".jj"), 0o755))
	return repositoryRoot
}

func TestNewApplicationRegistersSubcommands(testInstance *testing.T) {
	application := NewApplication()

	registeredNames := map[string]bool{}
	for _, registeredCommand := range application.rootCommand.Commands() {
		registeredNames[registeredCommand.Name()] = true
	}

	require.True(testInstance, registeredNames["prompt"])
	require.True(testInstance, registeredNames["detect"])
	require.Equal(testInstance, applicationVersionConstant, application.rootCommand.Version)
}

func TestDetectExitCodesThroughApplication(testInstance *testing.T) {
	repositoryRoot := newRepositoryDirectory(testInstance)

	insideApplication := NewApplication()
	insideApplication.rootCommand.SetArgs([]string{"detect", "--cwd", repositoryRoot})
	require.NoError(testInstance, insideApplication.Execute())

	outsideApplication := NewApplication()
	outsideApplication.rootCommand.SetArgs([]string{"detect", "--cwd", testInstance.TempDir()})
	executionError := outsideApplication.Execute()

	exitCodeError := utils.ExitCodeError{}
	require.True(testInstance, errors.As(executionError, &exitCodeError))
	require.Equal(testInstance, 1, exitCodeError.Code)
}

func TestRootPromptFailsSilentlyOutsideRepository(testInstance *testing.T) {
	application := NewApplication()
	application.rootCommand.SetArgs([]string{"--cwd", testInstance.TempDir()})

	executionError := application.Execute()

	exitCodeError := utils.ExitCodeError{}
	require.True(testInstance, errors.As(executionError, &exitCodeError))
	require.Equal(testInstance, 1, exitCodeError.Code)
}

func TestLogLevelFlagOverridesConfiguration(testInstance *testing.T) {
	application := NewApplication()
	application.rootCommand.SetArgs([]string{"detect", "--cwd", newRepositoryDirectory(testInstance), "--log-level", "debug"})

	require.NoError(testInstance, application.Execute())
	require.Equal(testInstance, "debug", application.configuration.Common.LogLevel)
}
