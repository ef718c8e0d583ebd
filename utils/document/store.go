package document

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Store loads and validates documents below a data root. Pipelines and params
// are cached by resolved path since many presets share them.
type Store struct {
	Root      string
	Validator Validator

	mu        sync.Mutex
	pipelines map[string]*Pipeline
	params    map[string]*Params
}

// Bundle is a preset together with every document it references, in
// reference order
type Bundle struct {
	Preset    *Preset
	Pipelines []*Pipeline
	Params    []*Params
}

// NewStore creates a store rooted at root. A nil validator selects the
// embedded CUE schema.
func NewStore(root string, validator Validator) (*Store, error) {
	if validator == nil {
		v, err := NewCUEValidator()
		if err != nil {
			return nil, err
		}
		validator = v
	}
	return &Store{
		Root:      root,
		Validator: validator,
		pipelines: make(map[string]*Pipeline),
		params:    make(map[string]*Params),
	}, nil
}

// load reads, parses and validates one document
func (s *Store) load(kind Kind, path string) (*yaml.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	node, generic, err := parseDocument(path, kind, data)
	if err != nil {
		return nil, err
	}

	if violations := s.Validator.Validate(kind, generic); len(violations) > 0 {
		return nil, &SchemaError{Path: path, Kind: kind, Violations: violations}
	}
	return node, nil
}

// Validate checks a single file against the schema for kind
func (s *Store) Validate(kind Kind, path string) error {
	_, err := s.load(kind, path)
	if err != nil {
		if _, ok := err.(*SchemaError); ok {
			return err
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return nil
}

// LoadPreset reads a preset document from path
func (s *Store) LoadPreset(path string) (*Preset, error) {
	node, err := s.load(KindPreset, path)
	if err != nil {
		if _, ok := err.(*SchemaError); ok {
			return nil, err
		}
		return nil, fmt.Errorf("failed to read preset %s: %w", path, err)
	}
	return decodePreset(path, node)
}

// PipelinePath resolves a pipeline reference of p
func (s *Store) PipelinePath(p *Preset, ref string) string {
	return filepath.Join(s.Root, p.PipelineRoot, ref)
}

// ParamsPath resolves a parameter set reference of p
func (s *Store) ParamsPath(p *Preset, ref string) string {
	return filepath.Join(s.Root, p.ParameterRoot, ref)
}

// LoadPipeline loads the pipeline p refers to as ref
func (s *Store) LoadPipeline(p *Preset, ref string) (*Pipeline, error) {
	path := s.PipelinePath(p, ref)

	s.mu.Lock()
	cached, ok := s.pipelines[path]
	s.mu.Unlock()
	if ok {
		return cached, nil
	}

	node, err := s.load(KindPipeline, path)
	if err != nil {
		return nil, s.referenceError(p, ref, path, err)
	}
	pipeline, err := decodePipeline(path, node)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.pipelines[path] = pipeline
	s.mu.Unlock()
	return pipeline, nil
}

// LoadParams loads the parameter set p refers to as ref
func (s *Store) LoadParams(p *Preset, ref string) (*Params, error) {
	path := s.ParamsPath(p, ref)

	s.mu.Lock()
	cached, ok := s.params[path]
	s.mu.Unlock()
	if ok {
		return cached, nil
	}

	node, err := s.load(KindParams, path)
	if err != nil {
		return nil, s.referenceError(p, ref, path, err)
	}
	params, err := decodeParamsDocument(path, node)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.params[path] = params
	s.mu.Unlock()
	return params, nil
}

// LoadBundle loads a preset and everything it references. Loading stops at
// the first failing document.
func (s *Store) LoadBundle(path string) (*Bundle, error) {
	preset, err := s.LoadPreset(path)
	if err != nil {
		return nil, err
	}

	b := &Bundle{Preset: preset}
	for _, ref := range preset.Pipelines {
		pipeline, err := s.LoadPipeline(preset, ref)
		if err != nil {
			return nil, err
		}
		b.Pipelines = append(b.Pipelines, pipeline)
	}
	for _, ref := range preset.ParameterSets {
		params, err := s.LoadParams(preset, ref)
		if err != nil {
			return nil, err
		}
		b.Params = append(b.Params, params)
	}
	return b, nil
}

// referenceError keeps schema failures as they are and wraps I/O failures
func (s *Store) referenceError(p *Preset, ref, path string, err error) error {
	if _, ok := err.(*SchemaError); ok {
		return err
	}
	return &ReferenceError{Preset: p.Path, Reference: ref, Path: path, Err: err}
}
