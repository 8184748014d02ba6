package toonfmt

import (
	"fmt"
	"strconv"

	"github.com/dwekat/tooner"
	"gopkg.in/yaml.v3"
)

// FromYAML decodes YAML text into a Value tree. Unlike FromJSON, this
// direction is order-faithful: it walks yaml.v3's Node tree, whose
// MappingNode content preserves the key/value pairs in document order,
// rather than decoding into a plain map.
func FromYAML(data []byte) (tooner.Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return tooner.Value{}, fmt.Errorf("toonfmt: decode yaml: %w", err)
	}
	if len(doc.Content) == 0 {
		return tooner.Obj(tooner.NewObject()), nil
	}
	return fromYAMLNode(doc.Content[0])
}

func fromYAMLNode(n *yaml.Node) (tooner.Value, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return fromYAMLScalar(n), nil
	case yaml.SequenceNode:
		items := make([]tooner.Value, len(n.Content))
		for i, el := range n.Content {
			v, err := fromYAMLNode(el)
			if err != nil {
				return tooner.Value{}, err
			}
			items[i] = v
		}
		return tooner.Array(items), nil
	case yaml.MappingNode:
		obj := tooner.NewObject()
		for i := 0; i+1 < len(n.Content); i += 2 {
			keyNode, valNode := n.Content[i], n.Content[i+1]
			v, err := fromYAMLNode(valNode)
			if err != nil {
				return tooner.Value{}, err
			}
			obj.Set(keyNode.Value, v)
		}
		return tooner.Obj(obj), nil
	case yaml.AliasNode:
		return fromYAMLNode(n.Alias)
	default:
		return tooner.Null(), nil
	}
}

func fromYAMLScalar(n *yaml.Node) tooner.Value {
	switch n.Tag {
	case "!!null":
		return tooner.Null()
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err == nil {
			return tooner.Bool(b)
		}
	case "!!int", "!!float":
		if f, err := strconv.ParseFloat(n.Value, 64); err == nil {
			return tooner.Number(f)
		}
	}
	return tooner.String(n.Value)
}

// ToYAML renders a Value tree as YAML text, preserving object key
// order by building an explicit yaml.Node tree rather than marshaling
// through map[string]interface{}.
func ToYAML(v tooner.Value) ([]byte, error) {
	return yaml.Marshal(toYAMLNode(v))
}

func toYAMLNode(v tooner.Value) *yaml.Node {
	switch v.Kind() {
	case tooner.KindNull:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	case tooner.KindBool:
		s := "false"
		if v.Bool() {
			s = "true"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: s}
	case tooner.KindNumber:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: strconv.FormatFloat(v.Number(), 'g', -1, 64)}
	case tooner.KindString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.Str()}
	case tooner.KindArray:
		items := v.Array()
		content := make([]*yaml.Node, len(items))
		for i, el := range items {
			content[i] = toYAMLNode(el)
		}
		return &yaml.Node{Kind: yaml.SequenceNode, Content: content}
	case tooner.KindObject:
		obj := v.Object()
		content := make([]*yaml.Node, 0, obj.Len()*2)
		for _, k := range obj.Keys() {
			fv, _ := obj.Get(k)
			content = append(content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}, toYAMLNode(fv))
		}
		return &yaml.Node{Kind: yaml.MappingNode, Content: content}
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}
