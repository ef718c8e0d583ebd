// Package slangp models the line-oriented key = value preset format consumed
// by RetroArch. Lines are kept verbatim; only the keys a rule touches are
// ever rebuilt, so untouched lines round-trip byte for byte.
package slangp

import (
	"fmt"
	"strconv"
	"strings"
)

// Line is one parsed line of a configuration text
type Line struct {
	Raw       string
	Key       string // Trimmed text before the first '=' (assignments only)
	Value     string // Trimmed text after the first '=', quotes kept
	IsAssign  bool
	IsComment bool
	IsBlank   bool
}

// ParseLine classifies a raw line
func ParseLine(raw string) Line {
	l := Line{Raw: raw}
	trimmed := strings.TrimSpace(raw)

	switch {
	case trimmed == "":
		l.IsBlank = true
	case strings.HasPrefix(trimmed, "#"):
		l.IsComment = true
	default:
		if key, value, ok := strings.Cut(raw, "="); ok {
			l.IsAssign = true
			l.Key = strings.TrimSpace(key)
			l.Value = strings.TrimSpace(value)
		}
	}
	return l
}

// Unquoted returns the value with one pair of surrounding double quotes removed
func (l Line) Unquoted() string {
	return Unquote(l.Value)
}

// IsQuoted reports whether the value is wrapped in double quotes
func (l Line) IsQuoted() bool {
	return len(l.Value) >= 2 && strings.HasPrefix(l.Value, `"`) && strings.HasSuffix(l.Value, `"`)
}

// Unquote strips one pair of surrounding double quotes, if present
func Unquote(v string) string {
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
		return v[1 : len(v)-1]
	}
	return v
}

// Quote wraps v in double quotes
func Quote(v string) string {
	return `"` + v + `"`
}

// Assign formats a "key = value" line
func Assign(key, value string) string {
	return key + " = " + value
}

// StageKey builds a per-stage key such as "shader3" or "scale_type_x0"
func StageKey(name string, index int) string {
	return name + strconv.Itoa(index)
}

// SplitLines splits text into lines, accepting \n and \r\n endings. A final
// newline does not produce a trailing empty line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}

// JoinLines joins lines with \n and terminates the text with a newline
func JoinLines(lines []string) string {
	return strings.Join(lines, "\n") + "\n"
}

// Parse splits and classifies every line of text
func Parse(text string) []Line {
	raw := SplitLines(text)
	lines := make([]Line, len(raw))
	for i, r := range raw {
		lines[i] = ParseLine(r)
	}
	return lines
}

// Find returns the index of the first assignment to key, or -1
func Find(lines []Line, key string) int {
	for i, l := range lines {
		if l.IsAssign && l.Key == key {
			return i
		}
	}
	return -1
}

// HasKey reports whether any line assigns key
func HasKey(lines []Line, key string) bool {
	return Find(lines, key) >= 0
}

// ShaderCount reads the "shaders = N" line
func ShaderCount(lines []Line) (int, error) {
	i := Find(lines, "shaders")
	if i < 0 {
		return 0, fmt.Errorf("no shaders line")
	}
	n, err := strconv.Atoi(lines[i].Unquoted())
	if err != nil {
		return 0, fmt.Errorf("invalid shader count %q: %w", lines[i].Value, err)
	}
	return n, nil
}

// CollapseBlankLines reduces every run of blank lines to a single empty line
func CollapseBlankLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	lastBlank := false
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			if !lastBlank {
				out = append(out, "")
			}
			lastBlank = true
			continue
		}
		out = append(out, line)
		lastBlank = false
	}
	return out
}
