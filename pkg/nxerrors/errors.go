package nxerrors

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies the high level class of an error surfaced by netjsonuci.
type Kind string

const (
	// KindTypeMismatch indicates the input had the wrong shape before validation.
	KindTypeMismatch Kind = "type_mismatch"
	// KindSchemaViolation indicates the document failed NetJSON schema validation.
	KindSchemaViolation Kind = "schema_violation"
	// KindUnmappedValue 表示枚举类字段的值不在转换表中。
	KindUnmappedValue Kind = "unmapped_value"
	// KindMalformedCustomBlock 表示自定义块格式错误（通常非致命）。
	KindMalformedCustomBlock Kind = "malformed_custom_block"
	// KindRender indicates the serializer could not produce output.
	KindRender Kind = "render"
	// KindInternal 表示未知或内部错误。
	KindInternal Kind = "internal"
)

// Error 包装底层错误并附加 Kind，方便调用方根据类型处理。
type Error struct {
	Kind Kind
	Err  error
}

// Error 实现 error 接口。
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

// Unwrap 允许 errors.Is/As 访问底层错误。
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New 创建指定 Kind 的错误。
func New(kind Kind, err error) error {
	if err == nil {
		err = errors.New(string(kind))
	}
	return &Error{Kind: kind, Err: err}
}

// KindOf returns the Kind of the outermost *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Violation is a single schema failure located by a JSON pointer into the document.
type Violation struct {
	Path   string
	Reason string
}

func (v Violation) String() string {
	path := v.Path
	if path == "" {
		path = "/"
	}
	return fmt.Sprintf("%s: %s", path, v.Reason)
}

// SchemaViolationError carries every violation reported for a document.
type SchemaViolationError struct {
	Violations []Violation
}

func (e *SchemaViolationError) Error() string {
	if e == nil || len(e.Violations) == 0 {
		return "document does not match schema"
	}
	if len(e.Violations) == 1 {
		return e.Violations[0].String()
	}
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.String())
	}
	return fmt.Sprintf("%d violations: %s", len(e.Violations), strings.Join(parts, "; "))
}

// First returns the first violation, if any.
func (e *SchemaViolationError) First() (Violation, bool) {
	if e == nil || len(e.Violations) == 0 {
		return Violation{}, false
	}
	return e.Violations[0], true
}

// NewSchemaViolation wraps violations into a KindSchemaViolation error.
func NewSchemaViolation(violations ...Violation) error {
	return New(KindSchemaViolation, &SchemaViolationError{Violations: violations})
}

// UnmappedValueError reports an enum-like value with no translation.
type UnmappedValueError struct {
	Path  string
	Field string
	Value string
}

func (e *UnmappedValueError) Error() string {
	return fmt.Sprintf("%s: unsupported %s %q", e.Path, e.Field, e.Value)
}

// NewUnmappedValue creates a KindUnmappedValue error.
func NewUnmappedValue(path, field, value string) error {
	return New(KindUnmappedValue, &UnmappedValueError{Path: path, Field: field, Value: value})
}

// TypeMismatchError reports input that is not a mapping (or text decoding to one).
type TypeMismatchError struct {
	Path string
	Got  string
}

func (e *TypeMismatchError) Error() string {
	path := e.Path
	if path == "" {
		path = "document"
	}
	return fmt.Sprintf("%s must be a mapping or a NetJSON text document, got %s", path, e.Got)
}

// NewTypeMismatch creates a KindTypeMismatch error.
func NewTypeMismatch(path, got string) error {
	return New(KindTypeMismatch, &TypeMismatchError{Path: path, Got: got})
}
