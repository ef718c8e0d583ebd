// Package document loads the structured documents presets are assembled
// from: Preset, Pipeline and Params. Documents may be JSON or YAML; mapping
// order is preserved because stage indices follow document order.
package document

// Kind names a document schema
type Kind string

const (
	KindPreset   Kind = "preset"
	KindPipeline Kind = "pipeline"
	KindParams   Kind = "params"
)

// Kinds lists every document kind in display order
var Kinds = []Kind{KindPreset, KindPipeline, KindParams}

// Default reference roots, relative to the store root
const (
	DefaultPipelineRoot  = "pipelines"
	DefaultParameterRoot = "params"
)

// Preset is the top-level description of one assembled configuration
type Preset struct {
	Path          string   `yaml:"-"`
	Title         string   `yaml:"title"`
	Description   string   `yaml:"description"`
	Type          string   `yaml:"type"`     // Output subdirectory
	Filename      string   `yaml:"filename"` // Output basename; extension is replaced
	PipelineRoot  string   `yaml:"pipeline_root"`
	ParameterRoot string   `yaml:"parameter_root"`
	Pipelines     []string `yaml:"pipelines"`
	ParameterSets []string `yaml:"parameter_sets"`
}

// Pipeline is a reusable, ordered bundle of shader stages
type Pipeline struct {
	Path       string
	RootPath   string
	Stages     []Stage // Document order of the shaders mapping
	Parameters []Param // Document order of the parameters mapping
}

// Stage is one shader pass within a pipeline
type Stage struct {
	Key     string // Unique within its pipeline only
	Shader  string
	Options StageOptions
}

// StageOptions is the decoded option bag of a stage
type StageOptions struct {
	FilterLinear bool
	ScaleType    ScaleValue  // Defaults to source
	Scale        *ScaleValue // nil when absent
	Extra        []Param     // Remaining options in bag order
}

// ScaleValue is either a single value or an x/y pair
type ScaleValue struct {
	X    string
	Y    string
	Pair bool
}

// Scalar returns a single-valued ScaleValue
func Scalar(v string) ScaleValue {
	return ScaleValue{X: v}
}

// PairOf returns a two-valued ScaleValue
func PairOf(x, y string) ScaleValue {
	return ScaleValue{X: x, Y: y, Pair: true}
}

// DefaultScaleType is emitted when a stage sets no scale_type
var DefaultScaleType = Scalar("source")

// Param is a name/value pair emitted verbatim
type Param struct {
	Name  string
	Value string
}

// Params holds additive parameter overrides
type Params struct {
	Path       string
	Parameters []Param
}
