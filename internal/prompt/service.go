package prompt

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jjtools/jjprompt/internal/jjrepo"
)

const (
	serviceLoggerMissingMessageConstant    = "logger not configured"
	serviceManagerMissingMessageConstant   = "repository manager not configured"
	rootDiscoveryErrorTemplateConstant     = "repository root discovery failed: %w"
	settingsBootstrapErrorTemplateConstant = "settings bootstrap failed: %w"
	factsCollectionErrorTemplateConstant   = "workspace facts collection failed: %w"
	promptGeneratedDebugMessageConstant    = "prompt generated"
	logFieldRepositoryRootConstant         = "repository_root"
	logFieldBookmarkCountConstant          = "bookmark_count"
	logFieldFileCountPresentConstant       = "file_count_present"
)

// ServiceDependencies carries the collaborators required by the prompt service.
type ServiceDependencies struct {
	Logger            *zap.Logger
	RepositoryManager *jjrepo.RepositoryManager
	FileCountProbe    *jjrepo.FileCountProbe
}

// PromptOptions is the resolved set of options for one prompt generation.
type PromptOptions struct {
	WorkingDirectory  string
	IDLength          uint
	Symbol            string
	ColorDisabled     bool
	FileCountDisabled bool
}

// Service sequences the prompt pipeline: locate the repository, bootstrap
// settings, read workspace facts, probe the file count, and render.
type Service struct {
	logger            *zap.Logger
	repositoryManager *jjrepo.RepositoryManager
	fileCountProbe    *jjrepo.FileCountProbe
}

// NewService validates dependencies and constructs a Service. A missing
// probe disables the file-count segment rather than failing construction.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.Logger == nil {
		return nil, errors.New(serviceLoggerMissingMessageConstant)
	}
	if dependencies.RepositoryManager == nil {
		return nil, errors.New(serviceManagerMissingMessageConstant)
	}

	return &Service{
		logger:            dependencies.Logger,
		repositoryManager: dependencies.RepositoryManager,
		fileCountProbe:    dependencies.FileCountProbe,
	}, nil
}

// GeneratePrompt produces the prompt line for the workspace containing
// options.WorkingDirectory. Failures are total: any error yields no output.
func (service *Service) GeneratePrompt(executionContext context.Context, options PromptOptions) (string, error) {
	repositoryRoot, rootDiscoveryError := jjrepo.FindRepositoryRoot(options.WorkingDirectory)
	if rootDiscoveryError != nil {
		return "", fmt.Errorf(rootDiscoveryErrorTemplateConstant, rootDiscoveryError)
	}

	syntheticSettings, settingsError := jjrepo.NewSyntheticSettings()
	if settingsError != nil {
		return "", fmt.Errorf(settingsBootstrapErrorTemplateConstant, settingsError)
	}

	workspaceFacts, factsError := service.repositoryManager.ReadWorkspaceFacts(executionContext, repositoryRoot, syntheticSettings)
	if factsError != nil {
		return "", fmt.Errorf(factsCollectionErrorTemplateConstant, factsError)
	}

	changedFileCount := 0
	fileCountPresent := false
	if !options.FileCountDisabled && service.fileCountProbe != nil {
		changedFileCount, fileCountPresent = service.fileCountProbe.CountChangedFiles(executionContext, repositoryRoot, syntheticSettings)
	}

	renderOptions := RenderOptions{
		Symbol:       options.Symbol,
		IDLength:     options.IDLength,
		ColorEnabled: !options.ColorDisabled,
	}
	promptLine := Render(renderOptions, workspaceFacts, changedFileCount, fileCountPresent)

	service.logger.Debug(
		promptGeneratedDebugMessageConstant,
		zap.String(logFieldRepositoryRootConstant, repositoryRoot),
		zap.Int(logFieldBookmarkCountConstant, len(workspaceFacts.Bookmarks)),
		zap.Bool(logFieldFileCountPresentConstant, fileCountPresent),
	)

	return promptLine, nil
}
