package frontmatter

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	mapstructure "github.com/go-viper/mapstructure/v2"
)

const (
	fieldMissingTemplateConstant     = "front matter field %q is missing"
	fieldInvalidTemplateConstant     = "front matter field %q is invalid: %v"
	decodeErrorTemplateConstant      = "unable to decode front matter: %w"
	timestampInvalidTemplateConstant = "unrecognized timestamp %q"
	mapstructureTagNameConstant      = "mapstructure"
)

// Field names used by knowledge base articles.
const (
	FieldTitle         = "title"
	FieldDescription   = "description"
	FieldPriority      = "priority"
	FieldDatePublished = "date_published"
	FieldDateModified  = "date_modified"
)

// timestampLayouts lists the ISO 8601 shapes accepted for date fields. Layouts
// without a zone are interpreted as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999 -07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02",
}

var timeType = reflect.TypeOf(time.Time{})

// Document is a parsed front matter block and the content that follows it.
type Document struct {
	Fields map[string]any
	Body   []byte
}

// Metadata is the article header schema.
type Metadata struct {
	Title         string    `mapstructure:"title"`
	Description   string    `mapstructure:"description"`
	Priority      int       `mapstructure:"priority"`
	DatePublished time.Time `mapstructure:"date_published"`
	DateModified  time.Time `mapstructure:"date_modified"`
}

// FieldError reports a missing or malformed front matter field.
type FieldError struct {
	Field string
	Cause error
}

// Error describes the field problem.
func (fieldError FieldError) Error() string {
	if fieldError.Cause == nil {
		return fmt.Sprintf(fieldMissingTemplateConstant, fieldError.Field)
	}
	return fmt.Sprintf(fieldInvalidTemplateConstant, fieldError.Field, fieldError.Cause)
}

// Unwrap exposes the underlying cause.
func (fieldError FieldError) Unwrap() error {
	return fieldError.Cause
}

// Decode populates target, a pointer to a struct tagged with mapstructure names.
func (document Document) Decode(target any) error {
	decoder, decoderError := newDecoder(target)
	if decoderError != nil {
		return fmt.Errorf(decodeErrorTemplateConstant, decoderError)
	}
	if decodeError := decoder.Decode(document.Fields); decodeError != nil {
		return fmt.Errorf(decodeErrorTemplateConstant, decodeError)
	}
	return nil
}

// Metadata decodes the article header schema.
func (document Document) Metadata() (Metadata, error) {
	var metadata Metadata
	if decodeError := document.Decode(&metadata); decodeError != nil {
		return Metadata{}, decodeError
	}
	return metadata, nil
}

// Time returns the named field as an instant in UTC.
func (document Document) Time(field string) (time.Time, error) {
	rawValue, present := document.Fields[field]
	if !present || rawValue == nil {
		return time.Time{}, FieldError{Field: field}
	}

	var instant time.Time
	decoder, decoderError := newDecoder(&instant)
	if decoderError != nil {
		return time.Time{}, FieldError{Field: field, Cause: decoderError}
	}
	if decodeError := decoder.Decode(rawValue); decodeError != nil {
		return time.Time{}, FieldError{Field: field, Cause: decodeError}
	}
	return instant.UTC(), nil
}

func newDecoder(target any) (*mapstructure.Decoder, error) {
	return mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          mapstructureTagNameConstant,
		WeaklyTypedInput: true,
		Result:           target,
		DecodeHook:       mapstructure.ComposeDecodeHookFunc(timestampDecodeHook),
	})
}

// timestampDecodeHook converts strings and Unix millisecond numbers into time.Time.
func timestampDecodeHook(sourceType reflect.Type, targetType reflect.Type, data any) (any, error) {
	if targetType != timeType {
		return data, nil
	}

	switch value := data.(type) {
	case time.Time:
		return value.UTC(), nil
	case string:
		return ParseTimestamp(value)
	case int:
		return time.UnixMilli(int64(value)).UTC(), nil
	case int64:
		return time.UnixMilli(value).UTC(), nil
	case uint64:
		return time.UnixMilli(int64(value)).UTC(), nil
	case float64:
		return time.UnixMilli(int64(value)).UTC(), nil
	default:
		return data, nil
	}
}

// ParseTimestamp interprets an ISO 8601 date or date-time; values without a zone are taken as UTC.
func ParseTimestamp(value string) (time.Time, error) {
	trimmedValue := strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		parsed, parseError := time.Parse(layout, trimmedValue)
		if parseError == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf(timestampInvalidTemplateConstant, value)
}
