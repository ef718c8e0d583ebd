package variant

import (
	"strings"

	"github.com/anikom15/scanline-classic/utils/fileutil"
	"github.com/anikom15/scanline-classic/utils/slangp"
)

// Shader suffix tokens
const (
	TokenSDR = "sdr"
	TokenHDR = "hdr"
	TokenWCG = "wcg"
)

const sdrShaderSuffix = "-sdr.slang"

// GamutPass switches every -sdr.slang shader to its -<token>.slang sibling
// when the sibling exists under <Root>/shaders.
type GamutPass struct {
	Token    string
	Root     string
	Resolver fileutil.Resolver

	// DropLastScaleType removes scale_type<N-1>. RetroArch fails to
	// recognize HDR and WCG presets that set it; the default is source.
	DropLastScaleType bool
}

// NewHDRPass returns the HDR pass with the scale_type workaround enabled
func NewHDRPass(root string, resolver fileutil.Resolver) *GamutPass {
	return &GamutPass{Token: TokenHDR, Root: root, Resolver: resolver, DropLastScaleType: true}
}

// NewWCGPass returns the WCG pass with the scale_type workaround enabled
func NewWCGPass(root string, resolver fileutil.Resolver) *GamutPass {
	return &GamutPass{Token: TokenWCG, Root: root, Resolver: resolver, DropLastScaleType: true}
}

// Name implements Pass
func (p *GamutPass) Name() string {
	return p.Token
}

// Transform implements Pass
func (p *GamutPass) Transform(src Source) Result {
	lines := slangp.Parse(src.Text)
	out := &result{}

	dropKey := ""
	if p.DropLastScaleType {
		dropKey = lastScaleTypeKey(lines)
	}

	for _, l := range lines {
		if dropKey != "" && l.IsAssign && l.Key == dropKey {
			out.remove(l.Raw)
			continue
		}
		if l.IsAssign && strings.HasPrefix(l.Key, "shader") {
			p.rewriteShader(l, src.Path, out)
			continue
		}
		out.keep(l.Raw)
	}
	return out.done()
}

func (p *GamutPass) rewriteShader(l slangp.Line, presetPath string, out *result) {
	declared := l.Unquoted()
	if !strings.HasSuffix(declared, sdrShaderSuffix) {
		out.keep(l.Raw)
		return
	}

	candidate := strings.TrimSuffix(declared, sdrShaderSuffix) + "-" + p.Token + ".slang"
	resolved := fileutil.ShaderSearchPath(p.Root, candidate)
	if !p.Resolver.Exists(resolved) {
		out.warn("%s shader not found: %s (referenced in %s)", strings.ToUpper(p.Token), resolved, presetPath)
		out.keep(l.Raw)
		return
	}

	if l.IsQuoted() {
		candidate = slangp.Quote(candidate)
	}
	out.replace(l.Raw, slangp.Assign(l.Key, candidate))
}

// lastScaleTypeKey returns "scale_type<N-1>" for a file declaring N shaders,
// or "" when the count is missing or not positive.
func lastScaleTypeKey(lines []slangp.Line) string {
	n, err := slangp.ShaderCount(lines)
	if err != nil || n <= 0 {
		return ""
	}
	return slangp.StageKey("scale_type", n-1)
}
