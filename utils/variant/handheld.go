package variant

import (
	"strconv"
	"strings"

	"github.com/anikom15/scanline-classic/utils/fileutil"
	"github.com/anikom15/scanline-classic/utils/slangp"
)

// Profile selects the handheld panel
type Profile string

const (
	ProfileLCD  Profile = "lcd"
	ProfileOLED Profile = "oled"
)

const (
	tvlKey          = "TVL"
	maxHandheldTVL  = 400.0
	handheldTVL     = "400.0"
	gamutSelectKey  = "GAMUT_SELECT"
	nativeGamut     = "1.0"
	shaderKeyPrefix = "shader"
)

// HandheldPass adapts presets to handheld panels. The OLED profile also
// selects the panel's native gamut.
type HandheldPass struct {
	Profile  Profile
	Resolver fileutil.Resolver
}

// NewHandheldPass returns a handheld pass for profile
func NewHandheldPass(profile Profile, resolver fileutil.Resolver) *HandheldPass {
	return &HandheldPass{Profile: profile, Resolver: resolver}
}

// Name implements Pass
func (p *HandheldPass) Name() string {
	return "handheld-" + string(p.Profile)
}

// Transform implements Pass
func (p *HandheldPass) Transform(src Source) Result {
	lines := slangp.Parse(src.Text)
	out := &result{}

	for _, l := range lines {
		if l.IsAssign && l.Key == tvlKey {
			capTVL(l, out)
			continue
		}
		if rewriteBorder(l, src.Path, p.Resolver, out) {
			continue
		}
		out.keep(l.Raw)
	}

	if p.Profile == ProfileOLED && !slangp.HasKey(lines, gamutSelectKey) {
		insertGamutSelect(out)
	}
	return out.done()
}

// capTVL limits TVL to what the panel can resolve. Values that do not parse
// or compare, such as nan, are left alone.
func capTVL(l slangp.Line, out *result) {
	tvl, err := strconv.ParseFloat(l.Unquoted(), 64)
	if err != nil || !(tvl > maxHandheldTVL) {
		out.keep(l.Raw)
		return
	}
	out.replace(l.Raw, slangp.Assign(tvlKey, slangp.Quote(handheldTVL)))
}

// insertGamutSelect adds GAMUT_SELECT before the first shader line, or at
// the end when there is none.
func insertGamutSelect(out *result) {
	line := slangp.Assign(gamutSelectKey, slangp.Quote(nativeGamut))

	pos := len(out.lines)
	for i, existing := range out.lines {
		if strings.HasPrefix(strings.TrimSpace(existing), shaderKeyPrefix) {
			pos = i
			break
		}
	}

	out.lines = append(out.lines, "")
	copy(out.lines[pos+1:], out.lines[pos:])
	out.lines[pos] = line
	out.changes = append(out.changes, "inserted "+line)
}
