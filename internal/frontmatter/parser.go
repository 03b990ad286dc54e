package frontmatter

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

const (
	delimiterLineConstant              = "---"
	documentEndLineConstant            = "..."
	frontMatterMissingMessageConstant  = "front matter block not found"
	frontMatterUnclosedMessageConstant = "front matter block is not terminated"
	yamlDecodeErrorTemplateConstant    = "front matter is not valid YAML: %w"
)

var (
	// ErrFrontMatterMissing indicates the document does not open with a front matter delimiter.
	ErrFrontMatterMissing = errors.New(frontMatterMissingMessageConstant)
	// ErrFrontMatterUnterminated indicates the opening delimiter has no closing counterpart.
	ErrFrontMatterUnterminated = errors.New(frontMatterUnclosedMessageConstant)

	byteOrderMark = []byte("\xef\xbb\xbf")
)

// Parse reads the front matter of content. A document must open with a `---`
// line and close the block with `---` or `...`; an empty block yields no fields.
func Parse(content []byte) (Document, error) {
	remaining := bytes.TrimPrefix(content, byteOrderMark)

	firstLine, afterFirstLine, _ := cutLine(remaining)
	if string(firstLine) != delimiterLineConstant {
		return Document{}, ErrFrontMatterMissing
	}

	var headerBuffer bytes.Buffer
	cursor := afterFirstLine
	for {
		if len(cursor) == 0 {
			return Document{}, ErrFrontMatterUnterminated
		}
		line, rest, _ := cutLine(cursor)
		if lineText := string(line); lineText == delimiterLineConstant || lineText == documentEndLineConstant {
			return decodeHeader(headerBuffer.Bytes(), rest)
		}
		headerBuffer.Write(line)
		headerBuffer.WriteByte('\n')
		cursor = rest
	}
}

func decodeHeader(header []byte, body []byte) (Document, error) {
	fields := map[string]any{}
	if len(bytes.TrimSpace(header)) > 0 {
		if decodeError := yaml.Unmarshal(header, &fields); decodeError != nil {
			return Document{}, fmt.Errorf(yamlDecodeErrorTemplateConstant, decodeError)
		}
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return Document{Fields: fields, Body: body}, nil
}

// cutLine splits off the first line, dropping its terminator and any trailing carriage return.
func cutLine(content []byte) ([]byte, []byte, bool) {
	line, rest, found := bytes.Cut(content, []byte{'\n'})
	return bytes.TrimRight(line, "\r \t"), rest, found
}
