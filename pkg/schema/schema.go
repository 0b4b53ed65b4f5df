// Package schema validates NetJSON DeviceConfiguration documents.
package schema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/honeybbq/netjsonuci/pkg/nxerrors"
)

//go:embed netjson.schema.json
var deviceSchema []byte

const schemaURL = "https://netjson.org/schema/device-configuration.json"

// Validator checks a loaded document.
type Validator interface {
	Validate(doc map[string]any) error
}

// JSONSchemaValidator validates documents against the embedded schema.
type JSONSchemaValidator struct {
	schema     *jsonschema.Schema
	properties []string
	firstOnly  bool
}

// Option configures a JSONSchemaValidator.
type Option func(*JSONSchemaValidator)

// FirstViolationOnly reports only the first violation (sorted by path).
func FirstViolationOnly() Option {
	return func(v *JSONSchemaValidator) {
		v.firstOnly = true
	}
}

var compiled = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7
	if err := compiler.AddResource(schemaURL, bytes.NewReader(deviceSchema)); err != nil {
		return nil, err
	}
	return compiler.Compile(schemaURL)
})

var declared = sync.OnceValue(func() []string {
	var raw struct {
		Properties map[string]json.RawMessage `json:"properties"`
	}
	if err := json.Unmarshal(deviceSchema, &raw); err != nil {
		return nil
	}
	keys := make([]string, 0, len(raw.Properties))
	for key := range raw.Properties {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
})

// New compiles the embedded schema. The compiled schema is shared by
// every validator in the process.
func New(opts ...Option) (*JSONSchemaValidator, error) {
	sch, err := compiled()
	if err != nil {
		return nil, nxerrors.New(nxerrors.KindInternal, fmt.Errorf("compile netjson schema: %w", err))
	}
	v := &JSONSchemaValidator{
		schema:     sch,
		properties: declared(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// MustNew is New that panics; the schema is a static asset.
func MustNew(opts ...Option) *JSONSchemaValidator {
	v, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return v
}

// Properties returns the top-level keys the schema declares, sorted.
func Properties() []string {
	keys := declared()
	out := make([]string, len(keys))
	copy(out, keys)
	return out
}

// Validate returns nil or a KindSchemaViolation error wrapping
// *nxerrors.SchemaViolationError.
func (v *JSONSchemaValidator) Validate(doc map[string]any) error {
	if doc == nil {
		return nxerrors.NewTypeMismatch("", "null")
	}
	err := v.schema.Validate(doc)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nxerrors.NewTypeMismatch("", err.Error())
	}
	violations := collectViolations(ve)
	if v.firstOnly && len(violations) > 1 {
		violations = violations[:1]
	}
	return nxerrors.NewSchemaViolation(violations...)
}

func collectViolations(root *jsonschema.ValidationError) []nxerrors.Violation {
	var out []nxerrors.Violation
	seen := make(map[nxerrors.Violation]struct{})
	var walk func(*jsonschema.ValidationError)
	walk = func(ve *jsonschema.ValidationError) {
		if len(ve.Causes) == 0 {
			v := nxerrors.Violation{Path: ve.InstanceLocation, Reason: ve.Message}
			if _, dup := seen[v]; !dup {
				seen[v] = struct{}{}
				out = append(out, v)
			}
			return
		}
		for _, cause := range ve.Causes {
			walk(cause)
		}
	}
	walk(root)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Reason < out[j].Reason
	})
	return out
}
