package prompt_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jjtools/jjprompt/internal/jjrepo"
	"github.com/jjtools/jjprompt/internal/prompt"
)

const (
	testFormatterSubtestTemplateConstant = "%d_%s"
	testFullChangeIDConstant             = "zzqmxtsmwwql"
	testDefaultSymbolConstant            = "  "
)

func TestRenderSegmentAssembly(testInstance *testing.T) {
	testCases := []struct {
		name           string
		options        prompt.RenderOptions
		facts          jjrepo.WorkspaceFacts
		fileCount      int
		fileCountKnown bool
		expectedOutput string
	}{
		{
			name:    "colored_change_id_only_with_placeholder_description",
			options: prompt.RenderOptions{Symbol: testDefaultSymbolConstant, IDLength: 4, ColorEnabled: true},
			facts: jjrepo.WorkspaceFacts{
				ChangeID:           testFullChangeIDConstant,
				UniquePrefixLength: 2,
				Description:        "(no description set)",
			},
			expectedOutput: "\x1b[32m  \x1b[0m" + "\x1b[1m\x1b[38;5;5mzz\x1b[0m\x1b[38;5;8mqm\x1b[39m",
		},
		{
			name:    "plain_bookmarks_and_conflict_marker",
			options: prompt.RenderOptions{Symbol: testDefaultSymbolConstant, IDLength: 4},
			facts: jjrepo.WorkspaceFacts{
				ChangeID:           testFullChangeIDConstant,
				UniquePrefixLength: 2,
				Bookmarks:          []string{"main", "feature-x"},
				HasConflict:        true,
			},
			expectedOutput: "  zzqm main feature-x >",
		},
		{
			name:    "plain_divergence_marker_follows_conflict_marker",
			options: prompt.RenderOptions{Symbol: "", IDLength: 4},
			facts: jjrepo.WorkspaceFacts{
				ChangeID:           testFullChangeIDConstant,
				UniquePrefixLength: 2,
				HasConflict:        true,
				IsDivergent:        true,
			},
			expectedOutput: "zzqm >\\",
		},
		{
			name:    "plain_divergence_marker_alone",
			options: prompt.RenderOptions{Symbol: "", IDLength: 4},
			facts: jjrepo.WorkspaceFacts{
				ChangeID:           testFullChangeIDConstant,
				UniquePrefixLength: 2,
				IsDivergent:        true,
			},
			expectedOutput: "zzqm \\",
		},
		{
			name:    "plain_file_count_and_description",
			options: prompt.RenderOptions{Symbol: "", IDLength: 4},
			facts: jjrepo.WorkspaceFacts{
				ChangeID:           testFullChangeIDConstant,
				UniquePrefixLength: 2,
				Description:        "Add parser",
			},
			fileCount:      9,
			fileCountKnown: true,
			expectedOutput: "zzqm ~9 Add parser",
		},
		{
			name:    "absent_file_count_removes_segment_and_separator",
			options: prompt.RenderOptions{Symbol: "", IDLength: 4},
			facts: jjrepo.WorkspaceFacts{
				ChangeID:           testFullChangeIDConstant,
				UniquePrefixLength: 2,
				Description:        "Add parser",
			},
			expectedOutput: "zzqm Add parser",
		},
		{
			name:    "id_length_never_exceeds_natural_length",
			options: prompt.RenderOptions{Symbol: "", IDLength: 64},
			facts: jjrepo.WorkspaceFacts{
				ChangeID:           testFullChangeIDConstant,
				UniquePrefixLength: 3,
			},
			expectedOutput: testFullChangeIDConstant,
		},
		{
			name:    "colored_split_clamps_to_rendered_length",
			options: prompt.RenderOptions{Symbol: "", IDLength: 2, ColorEnabled: true},
			facts: jjrepo.WorkspaceFacts{
				ChangeID:           testFullChangeIDConstant,
				UniquePrefixLength: 7,
			},
			expectedOutput: "\x1b[1m\x1b[38;5;5mzz\x1b[0m\x1b[38;5;8m\x1b[39m",
		},
		{
			name:    "colored_split_falls_back_to_display_length_when_prefix_unknown",
			options: prompt.RenderOptions{Symbol: "", IDLength: 4, ColorEnabled: true},
			facts: jjrepo.WorkspaceFacts{
				ChangeID:           testFullChangeIDConstant,
				UniquePrefixLength: 0,
			},
			expectedOutput: "\x1b[1m\x1b[38;5;5mzzqm\x1b[0m\x1b[38;5;8m\x1b[39m",
		},
		{
			name:    "whitespace_only_description_suppressed",
			options: prompt.RenderOptions{Symbol: "", IDLength: 4},
			facts: jjrepo.WorkspaceFacts{
				ChangeID:           testFullChangeIDConstant,
				UniquePrefixLength: 1,
				Description:        "   ",
			},
			expectedOutput: "zzqm",
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(testFormatterSubtestTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			renderedOutput := prompt.Render(testCase.options, testCase.facts, testCase.fileCount, testCase.fileCountKnown)
			require.Equal(testInstance, testCase.expectedOutput, renderedOutput)
		})
	}
}

func TestRenderIsDeterministic(testInstance *testing.T) {
	options := prompt.RenderOptions{Symbol: testDefaultSymbolConstant, IDLength: 4, ColorEnabled: true}
	facts := jjrepo.WorkspaceFacts{
		ChangeID:           testFullChangeIDConstant,
		UniquePrefixLength: 2,
		Bookmarks:          []string{"main"},
		Description:        "Refactor loader",
		HasConflict:        true,
	}

	firstRendering := prompt.Render(options, facts, 3, true)
	secondRendering := prompt.Render(options, facts, 3, true)

	require.Equal(testInstance, firstRendering, secondRendering)
}
