// Package preset compiles a preset document and its referenced pipelines and
// parameter sets into a base slangp configuration.
package preset

import (
	"github.com/anikom15/scanline-classic/utils/document"
)

// StageRef is one stage with its global index
type StageRef struct {
	Pipeline int // Position of the pipeline in the preset's reference list
	Index    int
	RootPath string
	Stage    document.Stage
}

// StageTable maps every (pipeline, stage key) pair of a preset to a unique
// index. Indices run from 0 in pipeline order, then shader document order.
type StageTable struct {
	Stages []StageRef
	lookup map[stageID]int
}

type stageID struct {
	pipeline int
	key      string
}

// BuildStageTable assigns indices in one pass before any line is emitted
func BuildStageTable(pipelines []*document.Pipeline) *StageTable {
	t := &StageTable{lookup: make(map[stageID]int)}
	for pi, p := range pipelines {
		for _, st := range p.Stages {
			idx := len(t.Stages)
			t.Stages = append(t.Stages, StageRef{
				Pipeline: pi,
				Index:    idx,
				RootPath: p.RootPath,
				Stage:    st,
			})
			t.lookup[stageID{pipeline: pi, key: st.Key}] = idx
		}
	}
	return t
}

// Len returns the total shader count
func (t *StageTable) Len() int {
	return len(t.Stages)
}

// Index returns the index assigned to key in pipeline pi
func (t *StageTable) Index(pi int, key string) (int, bool) {
	idx, ok := t.lookup[stageID{pipeline: pi, key: key}]
	return idx, ok
}
