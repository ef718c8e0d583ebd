package document

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Options with dedicated handling; everything else is passed through
const (
	optFilterLinear = "filter_linear"
	optScaleType    = "scale_type"
	optScale        = "scale"
)

type entry struct {
	key   string
	value *yaml.Node
}

// parseDocument decodes raw bytes twice: into a generic value for schema
// validation and into a node tree that keeps mapping order.
func parseDocument(path string, kind Kind, data []byte) (*yaml.Node, interface{}, error) {
	var generic interface{}
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return nil, nil, schemaErrorf(path, kind, "malformed document: %v", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, schemaErrorf(path, kind, "malformed document: %v", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, nil, schemaErrorf(path, kind, "empty document")
	}
	return doc.Content[0], generic, nil
}

// mappingEntries returns the key/value pairs of a mapping node in order
func mappingEntries(node *yaml.Node) ([]entry, error) {
	if node == nil {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping", node.Line)
	}
	entries := make([]entry, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		entries = append(entries, entry{key: node.Content[i].Value, value: node.Content[i+1]})
	}
	return entries, nil
}

// lookup returns the value node for key in a mapping, or nil
func lookup(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

// scalarText returns the literal text of a scalar node as written
func scalarText(node *yaml.Node) (string, error) {
	if node.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("line %d: expected a scalar value", node.Line)
	}
	return node.Value, nil
}

func decodeParams(node *yaml.Node) ([]Param, error) {
	entries, err := mappingEntries(node)
	if err != nil {
		return nil, err
	}
	params := make([]Param, 0, len(entries))
	for _, e := range entries {
		v, err := scalarText(e.value)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", e.key, err)
		}
		params = append(params, Param{Name: e.key, Value: v})
	}
	return params, nil
}

// decodeScale turns a scalar or a one/two element sequence into a ScaleValue
func decodeScale(node *yaml.Node) (ScaleValue, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		return Scalar(node.Value), nil
	case yaml.SequenceNode:
		values := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			v, err := scalarText(item)
			if err != nil {
				return ScaleValue{}, err
			}
			values = append(values, v)
		}
		switch len(values) {
		case 1:
			return Scalar(values[0]), nil
		case 2:
			return PairOf(values[0], values[1]), nil
		}
		return ScaleValue{}, fmt.Errorf("line %d: expected 1 or 2 values, got %d", node.Line, len(values))
	}
	return ScaleValue{}, fmt.Errorf("line %d: expected a value or a list of values", node.Line)
}

func decodeOptions(node *yaml.Node) (StageOptions, error) {
	opts := StageOptions{ScaleType: DefaultScaleType}

	entries, err := mappingEntries(node)
	if err != nil {
		return opts, err
	}

	for _, e := range entries {
		switch e.key {
		case optFilterLinear:
			if err := e.value.Decode(&opts.FilterLinear); err != nil {
				return opts, fmt.Errorf("%s: %w", optFilterLinear, err)
			}
		case optScaleType:
			st, err := decodeScale(e.value)
			if err != nil {
				return opts, fmt.Errorf("%s: %w", optScaleType, err)
			}
			opts.ScaleType = st
		case optScale:
			sc, err := decodeScale(e.value)
			if err != nil {
				return opts, fmt.Errorf("%s: %w", optScale, err)
			}
			opts.Scale = &sc
		default:
			v, err := scalarText(e.value)
			if err != nil {
				return opts, fmt.Errorf("option %q: %w", e.key, err)
			}
			opts.Extra = append(opts.Extra, Param{Name: e.key, Value: v})
		}
	}
	return opts, nil
}

func decodePreset(path string, node *yaml.Node) (*Preset, error) {
	var p Preset
	if err := node.Decode(&p); err != nil {
		return nil, schemaErrorf(path, KindPreset, "%v", err)
	}
	p.Path = path
	if p.PipelineRoot == "" {
		p.PipelineRoot = DefaultPipelineRoot
	}
	if p.ParameterRoot == "" {
		p.ParameterRoot = DefaultParameterRoot
	}
	return &p, nil
}

func decodePipeline(path string, node *yaml.Node) (*Pipeline, error) {
	p := &Pipeline{Path: path}

	if rp := lookup(node, "root_path"); rp != nil {
		p.RootPath = rp.Value
	}

	shaders, err := mappingEntries(lookup(node, "shaders"))
	if err != nil {
		return nil, schemaErrorf(path, KindPipeline, "shaders: %v", err)
	}
	options := lookup(node, "options")

	for _, s := range shaders {
		shader, err := scalarText(s.value)
		if err != nil {
			return nil, schemaErrorf(path, KindPipeline, "shader %q: %v", s.key, err)
		}
		opts, err := decodeOptions(lookup(options, s.key))
		if err != nil {
			return nil, schemaErrorf(path, KindPipeline, "options for stage %q: %v", s.key, err)
		}
		p.Stages = append(p.Stages, Stage{Key: s.key, Shader: shader, Options: opts})
	}

	p.Parameters, err = decodeParams(lookup(node, "parameters"))
	if err != nil {
		return nil, schemaErrorf(path, KindPipeline, "%v", err)
	}
	return p, nil
}

func decodeParamsDocument(path string, node *yaml.Node) (*Params, error) {
	params, err := decodeParams(lookup(node, "parameters"))
	if err != nil {
		return nil, schemaErrorf(path, KindParams, "%v", err)
	}
	return &Params{Path: path, Parameters: params}, nil
}
