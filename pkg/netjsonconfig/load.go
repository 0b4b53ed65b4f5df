package netjsonconfig

import (
	"fmt"
	"strconv"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
	"gopkg.in/yaml.v3"

	"github.com/honeybbq/netjsonuci/pkg/nxerrors"
)

// DefaultType 是省略 "type" 字段时补全的 NetJSON 类型。
const DefaultType = "DeviceConfiguration"

// Load turns a document into a canonical JSON mapping (float64 numbers,
// []any arrays, map[string]any objects) that the validator and the renderers
// can rely on.
//
// Accepted inputs: JSON text (string or []byte), YAML text, map[string]any
// and *structpb.Struct. The input is never modified; the result is a fresh copy.
func Load(doc any) (map[string]any, error) {
	switch v := doc.(type) {
	case nil:
		return nil, nxerrors.NewTypeMismatch("", "null")
	case string:
		return loadText([]byte(v))
	case []byte:
		return loadText(v)
	case *structpb.Struct:
		if v == nil {
			return nil, nxerrors.NewTypeMismatch("", "nil struct")
		}
		return v.AsMap(), nil
	case map[string]any:
		return canonicalize(v)
	default:
		return nil, nxerrors.NewTypeMismatch("", fmt.Sprintf("%T", doc))
	}
}

func loadText(data []byte) (map[string]any, error) {
	var msg structpb.Struct
	if err := protojson.Unmarshal(data, &msg); err == nil {
		return msg.AsMap(), nil
	}
	// JSON failed: accept YAML documents as well
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, nxerrors.NewTypeMismatch("", "undecodable text")
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, nxerrors.NewTypeMismatch("", describe(raw))
	}
	return canonicalize(m)
}

func canonicalize(m map[string]any) (map[string]any, error) {
	plain, err := toJSONValue(m, "")
	if err != nil {
		return nil, err
	}
	st, err := structpb.NewStruct(plain.(map[string]any))
	if err != nil {
		return nil, nxerrors.NewTypeMismatch("", err.Error())
	}
	return st.AsMap(), nil
}

// toJSONValue rewrites the Go container types structpb does not know about.
func toJSONValue(v any, path string) (any, error) {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			conv, err := toJSONValue(item, path+"/"+k)
			if err != nil {
				return nil, err
			}
			out[k] = conv
		}
		return out, nil
	case map[string]string:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = item
		}
		return out, nil
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			key := fmt.Sprint(k)
			conv, err := toJSONValue(item, path+"/"+key)
			if err != nil {
				return nil, err
			}
			out[key] = conv
		}
		return out, nil
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			conv, err := toJSONValue(item, path+"/"+strconv.Itoa(i))
			if err != nil {
				return nil, err
			}
			out[i] = conv
		}
		return out, nil
	case []string:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = item
		}
		return out, nil
	case []map[string]any:
		out := make([]any, len(val))
		for i, item := range val {
			conv, err := toJSONValue(item, path+"/"+strconv.Itoa(i))
			if err != nil {
				return nil, err
			}
			out[i] = conv
		}
		return out, nil
	case nil, bool, string, float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return val, nil
	default:
		return nil, nxerrors.NewTypeMismatch(path, fmt.Sprintf("%T", v))
	}
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, float64:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// WithDefaultType returns doc with "type" set to DeviceConfiguration when missing.
func WithDefaultType(doc map[string]any) map[string]any {
	if _, ok := doc["type"]; ok {
		return doc
	}
	out := deepCopy(doc)
	if out == nil {
		out = make(map[string]any, 1)
	}
	out["type"] = DefaultType
	return out
}
