package jjrepo

import (
	"context"
	"strconv"
	"strings"

	"github.com/jjtools/jjprompt/internal/execshell"
)

const (
	jjDiffSubcommandConstant = "diff"
	jjDiffStatFlagConstant   = "--stat"
)

// FileCountProbe obtains the number of files changed in the working-copy
// commit relative to its parents by shelling out to jj. The probe is
// best-effort: every failure mode degrades to "no count".
type FileCountProbe struct {
	executor *execshell.ShellExecutor
}

// NewFileCountProbe constructs a FileCountProbe around the provided executor.
func NewFileCountProbe(executor *execshell.ShellExecutor) (*FileCountProbe, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &FileCountProbe{executor: executor}, nil
}

// CountChangedFiles runs jj diff --stat with working-copy snapshotting
// disabled and parses the leading integer of the trailing summary line
// ("N files changed, ..."). The boolean result reports whether a strictly
// positive count was obtained.
func (probe *FileCountProbe) CountChangedFiles(executionContext context.Context, repositoryRoot string, settings SyntheticSettings) (int, bool) {
	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			jjDiffSubcommandConstant,
			jjDiffStatFlagConstant,
			jjIgnoreWorkingCopyFlagConstant,
			jjNoPagerFlagConstant,
			jjColorFlagConstant, jjColorNeverValueConstant,
		},
		WorkingDirectory:     repositoryRoot,
		EnvironmentVariables: settings.EnvironmentVariables(),
	}

	executionResult, executionError := probe.executor.ExecuteJJ(executionContext, commandDetails)
	if executionError != nil {
		return 0, false
	}

	return parseChangedFileCount(executionResult.StandardOutput)
}

func parseChangedFileCount(diffStatOutput string) (int, bool) {
	lastLine := ""
	for _, outputLine := range strings.Split(diffStatOutput, "\n") {
		if len(strings.TrimSpace(outputLine)) > 0 {
			lastLine = outputLine
		}
	}

	tokens := strings.Fields(lastLine)
	if len(tokens) == 0 {
		return 0, false
	}

	changedFileCount, parseError := strconv.Atoi(tokens[0])
	if parseError != nil || changedFileCount <= 0 {
		return 0, false
	}

	return changedFileCount, true
}
