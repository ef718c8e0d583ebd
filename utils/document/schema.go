package document

import (
	_ "embed"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

//go:embed schema.cue
var schemaSource string

// Validator checks a decoded document against the schema for its kind and
// returns the list of violations, if any.
type Validator interface {
	Validate(kind Kind, doc interface{}) []string
}

// CUEValidator validates documents against the embedded CUE definitions
type CUEValidator struct {
	mu          sync.Mutex // cue.Context is not safe for concurrent use
	ctx         *cue.Context
	definitions map[Kind]cue.Value
}

// NewCUEValidator compiles the embedded schema
func NewCUEValidator() (*CUEValidator, error) {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("failed to compile document schema: %w", err)
	}

	v := &CUEValidator{ctx: ctx, definitions: make(map[Kind]cue.Value)}
	for kind, name := range map[Kind]string{
		KindPreset:   "#Preset",
		KindPipeline: "#Pipeline",
		KindParams:   "#Params",
	} {
		def := schema.LookupPath(cue.ParsePath(name))
		if !def.Exists() {
			return nil, fmt.Errorf("schema definition %s not found", name)
		}
		v.definitions[kind] = def
	}
	return v, nil
}

// Validate implements Validator
func (v *CUEValidator) Validate(kind Kind, doc interface{}) []string {
	v.mu.Lock()
	defer v.mu.Unlock()

	def, ok := v.definitions[kind]
	if !ok {
		return []string{fmt.Sprintf("unknown document kind %q", kind)}
	}

	data := v.ctx.Encode(doc)
	if err := data.Err(); err != nil {
		return violations(err)
	}

	if err := def.Unify(data).Validate(cue.Concrete(true)); err != nil {
		return violations(err)
	}
	return nil
}

func violations(err error) []string {
	var msgs []string
	for _, e := range cueerrors.Errors(err) {
		msgs = append(msgs, e.Error())
	}
	if len(msgs) == 0 {
		msgs = append(msgs, err.Error())
	}
	return msgs
}
