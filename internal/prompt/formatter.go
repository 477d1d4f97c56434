package prompt

import (
	"strconv"
	"strings"

	"github.com/jjtools/jjprompt/internal/jjrepo"
)

// ANSI sequences matching jj's native palette byte-for-byte. The prompt must
// be visually indistinguishable from jj's own output, so these are emitted
// verbatim rather than through a styling library.
const (
	ansiResetConstant             = "\x1b[0m"
	ansiResetColorConstant        = "\x1b[39m"
	ansiSymbolColorConstant       = "\x1b[32m"
	ansiChangeIDPrefixConstant    = "\x1b[1m\x1b[38;5;5m"
	ansiChangeIDRemainderConstant = "\x1b[0m\x1b[38;5;8m"
	ansiBookmarkColorConstant     = "\x1b[38;5;5m"
	ansiDimConstant               = "\x1b[2m"
)

const (
	conflictMarkerConstant           = ">"
	divergentMarkerConstant          = "\\"
	noDescriptionPlaceholderConstant = "(no description set)"
	segmentSeparatorConstant         = " "
	fileCountPrefixConstant          = "~"
)

// RenderOptions is the immutable set of rendering options for one prompt line.
type RenderOptions struct {
	Symbol       string
	IDLength     uint
	ColorEnabled bool
}

// Render assembles the prompt line from the supplied facts. It is a pure
// function: identical inputs produce byte-identical output. Each optional
// segment is omitted together with its leading separator when absent.
func Render(options RenderOptions, facts jjrepo.WorkspaceFacts, fileCount int, fileCountPresent bool) string {
	var outputBuilder strings.Builder

	renderSymbolSegment(&outputBuilder, options)
	renderChangeIDSegment(&outputBuilder, options, facts)
	renderBookmarksSegment(&outputBuilder, options, facts.Bookmarks)
	renderStatusSegment(&outputBuilder, facts)
	renderFileCountSegment(&outputBuilder, options, fileCount, fileCountPresent)
	renderDescriptionSegment(&outputBuilder, options, facts.Description)

	return outputBuilder.String()
}

func renderSymbolSegment(outputBuilder *strings.Builder, options RenderOptions) {
	if !options.ColorEnabled {
		outputBuilder.WriteString(options.Symbol)
		return
	}
	outputBuilder.WriteString(ansiSymbolColorConstant)
	outputBuilder.WriteString(options.Symbol)
	outputBuilder.WriteString(ansiResetConstant)
}

func renderChangeIDSegment(outputBuilder *strings.Builder, options RenderOptions, facts jjrepo.WorkspaceFacts) {
	displayedChangeID := truncateChangeID(facts.ChangeID, options.IDLength)

	if !options.ColorEnabled {
		outputBuilder.WriteString(displayedChangeID)
		return
	}

	splitPoint := changeIDSplitPoint(facts.UniquePrefixLength, options.IDLength, len(displayedChangeID))
	outputBuilder.WriteString(ansiChangeIDPrefixConstant)
	outputBuilder.WriteString(displayedChangeID[:splitPoint])
	outputBuilder.WriteString(ansiChangeIDRemainderConstant)
	outputBuilder.WriteString(displayedChangeID[splitPoint:])
	outputBuilder.WriteString(ansiResetColorConstant)
}

// truncateChangeID never cuts past the identifier's natural length.
func truncateChangeID(fullChangeID string, displayLength uint) string {
	if uint(len(fullChangeID)) <= displayLength {
		return fullChangeID
	}
	return fullChangeID[:displayLength]
}

// changeIDSplitPoint clamps the unique-prefix split so indexing can never go
// out of range. A zero prefix length means the backend reported none, in
// which case the configured display length stands in.
func changeIDSplitPoint(uniquePrefixLength int, displayLength uint, renderedLength int) int {
	splitPoint := uniquePrefixLength
	if splitPoint <= 0 {
		splitPoint = int(displayLength)
	}
	if splitPoint > renderedLength {
		splitPoint = renderedLength
	}
	return splitPoint
}

func renderBookmarksSegment(outputBuilder *strings.Builder, options RenderOptions, bookmarks []string) {
	if len(bookmarks) == 0 {
		return
	}

	joinedBookmarks := strings.Join(bookmarks, segmentSeparatorConstant)
	outputBuilder.WriteString(segmentSeparatorConstant)
	if !options.ColorEnabled {
		outputBuilder.WriteString(joinedBookmarks)
		return
	}
	outputBuilder.WriteString(ansiBookmarkColorConstant)
	outputBuilder.WriteString(joinedBookmarks)
	outputBuilder.WriteString(ansiResetConstant)
}

func renderStatusSegment(outputBuilder *strings.Builder, facts jjrepo.WorkspaceFacts) {
	var statusBuilder strings.Builder
	if facts.HasConflict {
		statusBuilder.WriteString(conflictMarkerConstant)
	}
	if facts.IsDivergent {
		statusBuilder.WriteString(divergentMarkerConstant)
	}
	if statusBuilder.Len() == 0 {
		return
	}
	outputBuilder.WriteString(segmentSeparatorConstant)
	outputBuilder.WriteString(statusBuilder.String())
}

func renderFileCountSegment(outputBuilder *strings.Builder, options RenderOptions, fileCount int, fileCountPresent bool) {
	if !fileCountPresent {
		return
	}

	fileCountText := fileCountPrefixConstant + strconv.Itoa(fileCount)
	outputBuilder.WriteString(segmentSeparatorConstant)
	if !options.ColorEnabled {
		outputBuilder.WriteString(fileCountText)
		return
	}
	outputBuilder.WriteString(ansiDimConstant)
	outputBuilder.WriteString(fileCountText)
	outputBuilder.WriteString(ansiResetConstant)
}

func renderDescriptionSegment(outputBuilder *strings.Builder, options RenderOptions, description string) {
	trimmedDescription := strings.TrimSpace(description)
	if len(trimmedDescription) == 0 || trimmedDescription == noDescriptionPlaceholderConstant {
		return
	}

	outputBuilder.WriteString(segmentSeparatorConstant)
	if !options.ColorEnabled {
		outputBuilder.WriteString(trimmedDescription)
		return
	}
	outputBuilder.WriteString(ansiDimConstant)
	outputBuilder.WriteString(trimmedDescription)
	outputBuilder.WriteString(ansiResetConstant)
}
