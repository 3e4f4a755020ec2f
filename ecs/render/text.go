package render

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

const lineSpacing = 1.3

// wrapLines breaks s into lines no wider than max as reported by measure.
// Explicit newlines are kept; a single word wider than max gets its own
// line.
func wrapLines(s string, max float64, measure func(string) float64) []string {
	var out []string
	for _, para := range strings.Split(s, "\n") {
		if max <= 0 {
			out = append(out, para)
			continue
		}
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := words[0]
		for _, word := range words[1:] {
			next := line + " " + word
			if measure(next) > max {
				out = append(out, line)
				line = word
				continue
			}
			line = next
		}
		out = append(out, line)
	}
	return out
}

type textStyle struct {
	source *text.GoTextFaceSource
	size   float64
	color  color.NRGBA
	align  text.Align
	wrap   float64
}

// drawText draws s with its first line's top at (x, y). It returns the
// height used.
func drawText(dst *ebiten.Image, s string, x, y float64, st textStyle) float64 {
	if st.source == nil || st.size < 1 || s == "" {
		return 0
	}
	face := &text.GoTextFace{Source: st.source, Size: st.size}
	lines := wrapLines(s, st.wrap, func(l string) float64 { return text.Advance(l, face) })

	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(st.color)
	op.LineSpacing = st.size * lineSpacing
	op.PrimaryAlign = st.align
	text.Draw(dst, strings.Join(lines, "\n"), face, op)
	return float64(len(lines)) * op.LineSpacing
}
