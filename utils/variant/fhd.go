package variant

import (
	"github.com/anikom15/scanline-classic/utils/fileutil"
	"github.com/anikom15/scanline-classic/utils/slangp"
)

const (
	maskDiffusionKey = "MASK_DIFFUSION"
	maskDiffusionUHD = "2.0"
	maskDiffusionFHD = "3.0"
)

// FHDPass adapts 4K presets to 1080p displays
type FHDPass struct {
	Resolver fileutil.Resolver
}

// NewFHDPass returns a FHD pass using resolver for border lookups
func NewFHDPass(resolver fileutil.Resolver) *FHDPass {
	return &FHDPass{Resolver: resolver}
}

// Name implements Pass
func (p *FHDPass) Name() string {
	return "fhd"
}

// Transform implements Pass
func (p *FHDPass) Transform(src Source) Result {
	out := &result{}
	for _, l := range slangp.Parse(src.Text) {
		if l.IsAssign && l.Key == maskDiffusionKey && l.Unquoted() == maskDiffusionUHD {
			out.replace(l.Raw, slangp.Assign(maskDiffusionKey, slangp.Quote(maskDiffusionFHD)))
			continue
		}
		if rewriteBorder(l, src.Path, p.Resolver, out) {
			continue
		}
		out.keep(l.Raw)
	}
	return out.done()
}
