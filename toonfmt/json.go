// Package toonfmt converts between tooner's Value tree and the two
// front-end formats the CLI accepts: JSON and YAML. The JSON functions
// go through Go maps, so they do not keep object key order: FromJSON
// yields map iteration order and ToJSON writes keys sorted. The YAML
// functions walk yaml.v3 Node trees and keep key order in both
// directions.
package toonfmt

import (
	"encoding/json"
	"fmt"

	"github.com/dwekat/tooner"
)

// FromJSON decodes JSON text into a Value tree. Object key order
// follows encoding/json's map iteration, which is unspecified; round
// tripping through TOON and back to JSON does not reproduce the
// original key order.
func FromJSON(data []byte) (tooner.Value, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return tooner.Value{}, fmt.Errorf("toonfmt: decode json: %w", err)
	}
	return fromAny(v), nil
}

// ToJSON renders a Value tree as JSON text.
func ToJSON(v tooner.Value, indent string) ([]byte, error) {
	if indent == "" {
		return json.Marshal(toAny(v))
	}
	return json.MarshalIndent(toAny(v), "", indent)
}

func fromAny(v any) tooner.Value {
	switch x := v.(type) {
	case nil:
		return tooner.Null()
	case bool:
		return tooner.Bool(x)
	case float64:
		return tooner.Number(x)
	case string:
		return tooner.String(x)
	case []any:
		items := make([]tooner.Value, len(x))
		for i, el := range x {
			items[i] = fromAny(el)
		}
		return tooner.Array(items)
	case map[string]any:
		obj := tooner.NewObject()
		for k, fv := range x {
			obj.Set(k, fromAny(fv))
		}
		return tooner.Obj(obj)
	default:
		return tooner.Null()
	}
}

func toAny(v tooner.Value) any {
	switch v.Kind() {
	case tooner.KindNull:
		return nil
	case tooner.KindBool:
		return v.Bool()
	case tooner.KindNumber:
		return v.Number()
	case tooner.KindString:
		return v.Str()
	case tooner.KindArray:
		items := v.Array()
		out := make([]any, len(items))
		for i, el := range items {
			out[i] = toAny(el)
		}
		return out
	case tooner.KindObject:
		obj := v.Object()
		out := make(map[string]any, obj.Len())
		for _, k := range obj.Keys() {
			fv, _ := obj.Get(k)
			out[k] = toAny(fv)
		}
		return out
	default:
		return nil
	}
}
