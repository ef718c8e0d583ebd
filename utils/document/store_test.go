package document

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDoc(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newTestStore(t *testing.T, root string) *Store {
	t.Helper()
	s, err := NewStore(root, nil)
	require.NoError(t, err)
	return s
}

const crtPipelineJSON = `{
  "root_path": "../shaders",
  "shaders": {
    "lut": "lut.slang",
    "main": "crt-sdr.slang",
    "afterglow": "afterglow.slang"
  },
  "options": {
    "afterglow": {"alias": "AfterglowPass"},
    "lut": {"scale_type": ["source", "absolute"], "scale": [1, 512], "filter_linear": true},
    "main": {"scale_type": "viewport", "mipmap_input": false}
  },
  "parameters": {"TVL": "650.0", "MASK_DIFFUSION": 2.0}
}`

func TestLoadBundleJSON(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "pipelines/crt.json", crtPipelineJSON)
	writeDoc(t, root, "params/bright.yaml", "parameters:\n  GAMMA: 2.4\n  BRIGHTNESS: 1.1\n")
	presetPath := writeDoc(t, root, "input/sfc.json", `{
  "title": "Super Famicom",
  "description": "Consumer CRT",
  "type": "consumer",
  "filename": "sfc.json",
  "pipelines": ["crt.json"],
  "parameter_sets": ["bright.yaml"]
}`)

	s := newTestStore(t, root)
	b, err := s.LoadBundle(presetPath)
	require.NoError(t, err)

	assert.Equal(t, "Super Famicom", b.Preset.Title)
	assert.Equal(t, DefaultPipelineRoot, b.Preset.PipelineRoot)
	assert.Equal(t, DefaultParameterRoot, b.Preset.ParameterRoot)
	require.Len(t, b.Pipelines, 1)
	require.Len(t, b.Params, 1)

	p := b.Pipelines[0]
	assert.Equal(t, "../shaders", p.RootPath)

	var keys []string
	for _, st := range p.Stages {
		keys = append(keys, st.Key)
	}
	// Stage order follows the shaders mapping, not the options mapping
	if diff := cmp.Diff([]string{"lut", "main", "afterglow"}, keys); diff != "" {
		t.Errorf("stage order mismatch (-want +got):\n%s", diff)
	}

	lut := p.Stages[0].Options
	assert.True(t, lut.FilterLinear)
	assert.Equal(t, PairOf("source", "absolute"), lut.ScaleType)
	require.NotNil(t, lut.Scale)
	assert.Equal(t, PairOf("1", "512"), *lut.Scale)

	main := p.Stages[1].Options
	assert.False(t, main.FilterLinear)
	assert.Equal(t, Scalar("viewport"), main.ScaleType)
	assert.Nil(t, main.Scale)
	assert.Equal(t, []Param{{Name: "mipmap_input", Value: "false"}}, main.Extra)

	afterglow := p.Stages[2].Options
	assert.Equal(t, DefaultScaleType, afterglow.ScaleType)
	assert.Equal(t, []Param{{Name: "alias", Value: "AfterglowPass"}}, afterglow.Extra)

	assert.Equal(t, []Param{{Name: "TVL", Value: "650.0"}, {Name: "MASK_DIFFUSION", Value: "2.0"}}, p.Parameters)
	assert.Equal(t, []Param{{Name: "GAMMA", Value: "2.4"}, {Name: "BRIGHTNESS", Value: "1.1"}}, b.Params[0].Parameters)
}

func TestLoadPipelineCustomRoots(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "fragments/base.yaml", "shaders:\n  main: main.slang\n")
	writeDoc(t, root, "overrides/none.yaml", "parameters: {}\n")
	presetPath := writeDoc(t, root, "input/p.yaml", `title: T
description: D
type: t
filename: p
pipeline_root: fragments
parameter_root: overrides
pipelines: [base.yaml]
parameter_sets: [none.yaml]
`)

	s := newTestStore(t, root)
	b, err := s.LoadBundle(presetPath)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "fragments", "base.yaml"), b.Pipelines[0].Path)
	assert.Empty(t, b.Pipelines[0].RootPath)
	assert.Empty(t, b.Params[0].Parameters)
}

func TestLoadPipelineIsCached(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "pipelines/crt.json", crtPipelineJSON)
	preset := &Preset{Path: "p.json", PipelineRoot: DefaultPipelineRoot}

	s := newTestStore(t, root)
	first, err := s.LoadPipeline(preset, "crt.json")
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(root, "pipelines", "crt.json")))
	second, err := s.LoadPipeline(preset, "crt.json")
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name     string
		pipeline string
		params   string
		wantRef  bool
		wantKind Kind
	}{
		{
			name:    "missing pipeline",
			params:  "parameters: {}\n",
			wantRef: true,
		},
		{
			name:     "scale with three values",
			pipeline: `{"shaders": {"a": "a.slang"}, "options": {"a": {"scale": [1, 2, 3]}}}`,
			params:   "parameters: {}\n",
			wantKind: KindPipeline,
		},
		{
			name:     "shader is not a string",
			pipeline: `{"shaders": {"a": ["x"]}}`,
			params:   "parameters: {}\n",
			wantKind: KindPipeline,
		},
		{
			name:     "malformed pipeline",
			pipeline: `{"shaders": {`,
			params:   "parameters: {}\n",
			wantKind: KindPipeline,
		},
		{
			name:     "params without parameters",
			pipeline: `{"shaders": {"a": "a.slang"}}`,
			params:   "other: 1\n",
			wantKind: KindParams,
		},
		{
			name:     "missing params",
			pipeline: `{"shaders": {"a": "a.slang"}}`,
			wantRef:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			if tt.pipeline != "" {
				writeDoc(t, root, "pipelines/p.json", tt.pipeline)
			}
			if tt.params != "" {
				writeDoc(t, root, "params/s.yaml", tt.params)
			}
			presetPath := writeDoc(t, root, "input/x.json",
				`{"title": "x", "description": "x", "type": "x", "filename": "x", "pipelines": ["p.json"], "parameter_sets": ["s.yaml"]}`)

			_, err := newTestStore(t, root).LoadBundle(presetPath)
			require.Error(t, err)

			if tt.wantRef {
				var refErr *ReferenceError
				require.True(t, errors.As(err, &refErr), "expected ReferenceError, got %T: %v", err, err)
				assert.Equal(t, presetPath, refErr.Preset)
				assert.True(t, errors.Is(err, os.ErrNotExist))
				return
			}

			var schemaErr *SchemaError
			require.True(t, errors.As(err, &schemaErr), "expected SchemaError, got %T: %v", err, err)
			assert.Equal(t, tt.wantKind, schemaErr.Kind)
			assert.NotEmpty(t, schemaErr.Violations)
		})
	}
}

func TestValidate(t *testing.T) {
	root := t.TempDir()
	good := writeDoc(t, root, "good.yaml", "parameters:\n  TVL: 400\n")
	bad := writeDoc(t, root, "bad.yaml", "title: only a title\n")

	s := newTestStore(t, root)
	assert.NoError(t, s.Validate(KindParams, good))

	err := s.Validate(KindPreset, bad)
	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Contains(t, err.Error(), "preset validation error in")

	err = s.Validate(KindParams, filepath.Join(root, "absent.yaml"))
	require.Error(t, err)
	assert.False(t, errors.As(err, &schemaErr))
}

func TestPresetRequiresFilename(t *testing.T) {
	root := t.TempDir()
	path := writeDoc(t, root, "p.yaml", "title: a\ndescription: b\ntype: c\nfilename: \"\"\npipelines: []\nparameter_sets: []\n")

	_, err := newTestStore(t, root).LoadPreset(path)
	var schemaErr *SchemaError
	assert.True(t, errors.As(err, &schemaErr))
}
