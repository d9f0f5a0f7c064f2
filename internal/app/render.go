package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/samvad-hq/getrequester/pkg/targets"
	"gopkg.in/yaml.v3"
)

// render encodes a decoded JSON value as indented JSON or YAML. Numbers are
// expected as json.Number so they are written back with their original digits.
func render(v any, format string) ([]byte, error) {
	switch format {
	case targets.FormatYAML:
		out, err := yaml.Marshal(yamlNode(v))
		if err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return out, nil
	default:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return buf.Bytes(), nil
	}
}

// yamlNode builds the YAML tree by hand so json.Number keeps its literal
// text and is tagged as a number instead of being quoted as a string.
func yamlNode(v any) *yaml.Node {
	switch val := v.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	case bool:
		text := "false"
		if val {
			text = "true"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: text}
	case json.Number:
		tag := "!!int"
		if strings.ContainsAny(string(val), ".eE") {
			tag = "!!float"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: string(val)}
	case string:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: val}
	case []any:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range val {
			n.Content = append(n.Content, yamlNode(item))
		}
		return n
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range keys {
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
				yamlNode(val[k]),
			)
		}
		return n
	default:
		var n yaml.Node
		if err := n.Encode(val); err != nil {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: fmt.Sprint(val)}
		}
		return &n
	}
}
