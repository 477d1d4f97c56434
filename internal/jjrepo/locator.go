package jjrepo

import (
	"errors"
	"os"
	"path/filepath"
)

const (
	repositoryMarkerDirectoryNameConstant = ".jj"
	repositoryNotFoundMessageConstant     = "no jj repository found"
)

// ErrRepositoryNotFound reports that no ancestor directory contains a jj repository marker.
var ErrRepositoryNotFound = errors.New(repositoryNotFoundMessageConstant)

// FindRepositoryRoot walks the directory hierarchy upward from startingDirectory
// and returns the nearest ancestor (inclusive) containing a .jj directory.
func FindRepositoryRoot(startingDirectory string) (string, error) {
	currentDirectory := filepath.Clean(startingDirectory)
	for {
		markerPath := filepath.Join(currentDirectory, repositoryMarkerDirectoryNameConstant)
		markerInfo, statError := os.Stat(markerPath)
		if statError == nil && markerInfo.IsDir() {
			return currentDirectory, nil
		}

		parentDirectory := filepath.Dir(currentDirectory)
		if parentDirectory == currentDirectory {
			return "", ErrRepositoryNotFound
		}
		currentDirectory = parentDirectory
	}
}
