package jjrepo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jjtools/jjprompt/internal/execshell"
)

const (
	executorNotConfiguredMessageConstant = "shell executor not configured"
	factsQueryErrorTemplateConstant      = "working-copy facts query failed: %w"
	factsPayloadErrorTemplateConstant    = "working-copy facts payload malformed: %s"
	factsFieldCountMismatchConstant      = "unexpected field count"
	factsChangeIDMissingConstant         = "change id missing"
	factsFlagParseErrorConstant          = "status flag not a boolean"

	jjLogSubcommandConstant         = "log"
	jjNoGraphFlagConstant           = "--no-graph"
	jjIgnoreWorkingCopyFlagConstant = "--ignore-working-copy"
	jjNoPagerFlagConstant           = "--no-pager"
	jjColorFlagConstant             = "--color"
	jjColorNeverValueConstant       = "never"
	jjRevisionFlagConstant          = "-r"
	jjWorkingCopyRevisionConstant   = "@"
	jjTemplateFlagConstant          = "-T"

	factsFieldSeparatorConstant = "\n"
	factsFieldCountConstant     = 6
)

// factsTemplateConstant asks jj for one newline-separated field per fact of
// the working-copy commit. Bookmark names and description first lines cannot
// contain newlines, so the separator is unambiguous.
const factsTemplateConstant = `change_id ++ "\n" ++ change_id.shortest(0) ++ "\n" ++ local_bookmarks.join(" ") ++ "\n" ++ conflict ++ "\n" ++ divergent ++ "\n" ++ description.first_line()`

// ErrExecutorNotConfigured reports a missing shell executor during construction.
var ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)

// WorkspaceFacts bundles the read-only facts describing the working-copy commit.
type WorkspaceFacts struct {
	// ChangeID is the full reverse-hex encoded change identifier.
	ChangeID string
	// UniquePrefixLength is the length of the shortest unique change-id
	// prefix, zero when the backend reported none.
	UniquePrefixLength int
	// Bookmarks lists local bookmark names attached to the commit in the
	// order the backend emitted them.
	Bookmarks []string
	// Description is the first line of the commit description, trimmed.
	Description string
	// HasConflict reports an unresolved conflict on the commit.
	HasConflict bool
	// IsDivergent reports that the change id resolves to more than one commit.
	IsDivergent bool
}

// RepositoryManager satisfies the read contract against a jj repository by
// invoking the jj binary through the shell executor.
type RepositoryManager struct {
	executor *execshell.ShellExecutor
}

// NewRepositoryManager constructs a RepositoryManager around the provided executor.
func NewRepositoryManager(executor *execshell.ShellExecutor) (*RepositoryManager, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &RepositoryManager{executor: executor}, nil
}

// ReadWorkspaceFacts opens the repository at repositoryRoot read-only and
// collects the working-copy facts in a single jj invocation. Any failure
// fails the whole read; there are no partial facts.
func (manager *RepositoryManager) ReadWorkspaceFacts(executionContext context.Context, repositoryRoot string, settings SyntheticSettings) (WorkspaceFacts, error) {
	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			jjLogSubcommandConstant,
			jjNoGraphFlagConstant,
			jjIgnoreWorkingCopyFlagConstant,
			jjNoPagerFlagConstant,
			jjColorFlagConstant, jjColorNeverValueConstant,
			jjRevisionFlagConstant, jjWorkingCopyRevisionConstant,
			jjTemplateFlagConstant, factsTemplateConstant,
		},
		WorkingDirectory:     repositoryRoot,
		EnvironmentVariables: settings.EnvironmentVariables(),
	}

	executionResult, executionError := manager.executor.ExecuteJJ(executionContext, commandDetails)
	if executionError != nil {
		return WorkspaceFacts{}, fmt.Errorf(factsQueryErrorTemplateConstant, executionError)
	}

	return parseWorkspaceFacts(executionResult.StandardOutput)
}

func parseWorkspaceFacts(payload string) (WorkspaceFacts, error) {
	fields := strings.Split(payload, factsFieldSeparatorConstant)
	if len(fields) < factsFieldCountConstant {
		return WorkspaceFacts{}, fmt.Errorf(factsPayloadErrorTemplateConstant, factsFieldCountMismatchConstant)
	}

	changeID := strings.TrimSpace(fields[0])
	if len(changeID) == 0 {
		return WorkspaceFacts{}, fmt.Errorf(factsPayloadErrorTemplateConstant, factsChangeIDMissingConstant)
	}

	shortestPrefix := strings.TrimSpace(fields[1])

	hasConflict, conflictParseError := strconv.ParseBool(strings.TrimSpace(fields[3]))
	if conflictParseError != nil {
		return WorkspaceFacts{}, fmt.Errorf(factsPayloadErrorTemplateConstant, factsFlagParseErrorConstant)
	}

	isDivergent, divergentParseError := strconv.ParseBool(strings.TrimSpace(fields[4]))
	if divergentParseError != nil {
		return WorkspaceFacts{}, fmt.Errorf(factsPayloadErrorTemplateConstant, factsFlagParseErrorConstant)
	}

	return WorkspaceFacts{
		ChangeID:           changeID,
		UniquePrefixLength: len(shortestPrefix),
		Bookmarks:          strings.Fields(fields[2]),
		Description:        strings.TrimSpace(fields[5]),
		HasConflict:        hasConflict,
		IsDivergent:        isDivergent,
	}, nil
}
