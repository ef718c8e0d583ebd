package preset

import (
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-wordwrap"

	"github.com/anikom15/scanline-classic/utils/config"
	"github.com/anikom15/scanline-classic/utils/document"
	"github.com/anikom15/scanline-classic/utils/fileutil"
	"github.com/anikom15/scanline-classic/utils/slangp"
)

// Extension of every assembled configuration
const Extension = ".slangp"

// CommentWidth is the widest a description comment line may be
const CommentWidth = 72

const commentPrefix = "# "

// Assemble renders the base configuration text for a loaded bundle. The
// output depends only on the bundle, so unchanged inputs give identical text.
func Assemble(b *document.Bundle) string {
	table := BuildStageTable(b.Pipelines)
	config.DebugLog("Assigned %d shader stages for %s", table.Len(), b.Preset.Path)

	var lines []string
	lines = append(lines, commentPrefix+b.Preset.Title, "")
	lines = append(lines, wrapComment(b.Preset.Description)...)
	lines = append(lines, "")

	lines = append(lines, slangp.Assign("shaders", strconv.Itoa(table.Len())), "")

	for _, ref := range table.Stages {
		lines = append(lines, stageLines(ref)...)
		lines = append(lines, "")
	}

	hasPipelineParams := false
	for _, p := range b.Pipelines {
		for _, param := range p.Parameters {
			lines = append(lines, slangp.Assign(param.Name, param.Value))
			hasPipelineParams = true
		}
	}
	if hasPipelineParams {
		lines = append(lines, "")
	}

	for _, set := range b.Params {
		for _, param := range set.Parameters {
			lines = append(lines, slangp.Assign(param.Name, param.Value))
		}
	}

	lines = slangp.CollapseBlankLines(lines)
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return slangp.JoinLines(lines)
}

// stageLines emits the shader line and option block of one stage
func stageLines(ref StageRef) []string {
	idx := ref.Index
	opts := ref.Stage.Options

	lines := []string{
		slangp.Assign(slangp.StageKey("shader", idx), path.Join(ref.RootPath, ref.Stage.Shader)),
		slangp.Assign(slangp.StageKey("filter_linear", idx), strconv.FormatBool(opts.FilterLinear)),
	}
	lines = append(lines, scaleLines("scale_type", idx, opts.ScaleType)...)
	if opts.Scale != nil {
		lines = append(lines, scaleLines("scale", idx, *opts.Scale)...)
	}
	for _, extra := range opts.Extra {
		lines = append(lines, slangp.Assign(slangp.StageKey(extra.Name, idx), extra.Value))
	}
	return lines
}

// scaleLines fans a pair out into <name>_x/<name>_y keys
func scaleLines(name string, idx int, v document.ScaleValue) []string {
	if !v.Pair {
		return []string{slangp.Assign(slangp.StageKey(name, idx), v.X)}
	}
	return []string{
		slangp.Assign(slangp.StageKey(name+"_x", idx), v.X),
		slangp.Assign(slangp.StageKey(name+"_y", idx), v.Y),
	}
}

// wrapComment word-wraps text into "# " comment lines no wider than CommentWidth
func wrapComment(text string) []string {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return nil
	}
	wrapped := wordwrap.WrapString(text, uint(CommentWidth-len(commentPrefix)))

	var lines []string
	for _, line := range strings.Split(wrapped, "\n") {
		lines = append(lines, commentPrefix+line)
	}
	return lines
}

// OutputPath returns <outDir>/<type>/<filename stem>.slangp
func OutputPath(outDir string, p *document.Preset) string {
	name := fileutil.ReplaceExt(filepath.Clean(filepath.FromSlash(p.Filename)), Extension)
	return filepath.Join(outDir, filepath.Clean(p.Type), name)
}

// Compile loads the preset at path, assembles it and writes the result
// below outDir, overwriting any previous output.
func Compile(store *document.Store, presetPath, outDir string) (fileutil.WriteResult, error) {
	b, err := store.LoadBundle(presetPath)
	if err != nil {
		return fileutil.WriteResult{}, err
	}

	text := Assemble(b)
	dest := OutputPath(outDir, b.Preset)
	config.VerboseLog("Assembling %s -> %s", presetPath, dest)
	return fileutil.WriteFile(dest, []byte(text))
}
