package frontmatter_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/temirov/kbcheck/internal/frontmatter"
)

const testArticleContentConstant = `---
title: How to Use MyCrypto
description: A walkthrough
priority: 2
date_published: '2018-11-01'
date_modified: 2019-02-14T09:30:00+01:00
---
# Heading

Body text.
`

func TestParseExtractsFieldsAndBody(testInstance *testing.T) {
	document, parseError := frontmatter.Parse([]byte(testArticleContentConstant))
	require.NoError(testInstance, parseError)
	require.Equal(testInstance, "How to Use MyCrypto", document.Fields[frontmatter.FieldTitle])
	require.Equal(testInstance, "# Heading\n\nBody text.\n", string(document.Body))

	metadata, metadataError := document.Metadata()
	require.NoError(testInstance, metadataError)
	require.Equal(testInstance, "How to Use MyCrypto", metadata.Title)
	require.Equal(testInstance, "A walkthrough", metadata.Description)
	require.Equal(testInstance, 2, metadata.Priority)
	require.True(testInstance, metadata.DatePublished.Equal(time.Date(2018, time.November, 1, 0, 0, 0, 0, time.UTC)))
	require.True(testInstance, metadata.DateModified.Equal(time.Date(2019, time.February, 14, 8, 30, 0, 0, time.UTC)))
}

func TestParseDelimiterHandling(testInstance *testing.T) {
	testCases := []struct {
		name          string
		content       string
		expectedError error
		expectedTitle any
	}{
		{
			name:          "missing_block",
			content:       "# Just markdown\n",
			expectedError: frontmatter.ErrFrontMatterMissing,
		},
		{
			name:          "unterminated_block",
			content:       "---\ntitle: Lost\n",
			expectedError: frontmatter.ErrFrontMatterUnterminated,
		},
		{
			name:          "crlf_and_byte_order_mark",
			content:       "\xef\xbb\xbf---\r\ntitle: Windows\r\n---\r\nbody\r\n",
			expectedTitle: "Windows",
		},
		{
			name:          "document_end_marker",
			content:       "---\ntitle: Dots\n...\nbody\n",
			expectedTitle: "Dots",
		},
		{
			name:    "empty_block",
			content: "---\n---\nbody\n",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			document, parseError := frontmatter.Parse([]byte(testCase.content))
			if testCase.expectedError != nil {
				require.ErrorIs(testInstance, parseError, testCase.expectedError)
				return
			}
			require.NoError(testInstance, parseError)
			require.NotNil(testInstance, document.Fields)
			require.Equal(testInstance, testCase.expectedTitle, document.Fields[frontmatter.FieldTitle])
		})
	}
}

func TestParseRejectsMalformedYAML(testInstance *testing.T) {
	_, parseError := frontmatter.Parse([]byte("---\ntitle: [unclosed\n---\n"))
	require.Error(testInstance, parseError)
	require.False(testInstance, errors.Is(parseError, frontmatter.ErrFrontMatterMissing))
}
