package layout

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// extractGlyphs 为每个码点生成一个字形框。宽度取相邻两次前缀测量之差，
// 从不单独测量一个字符；遇到空白或 CJK 标点后重置前缀锚点，
// 让超长 run 的测量成本接近线性。
func extractGlyphs(text string, lines []Line, ts TextMeasurer) []Glyph {
	var out []Glyph
	for li, ln := range lines {
		for _, run := range ln.Runs {
			top := run.Baseline - run.Ascent()
			height := run.Ascent() + run.Descent()
			anchor, anchorX, prev := run.Start, run.X, 0.0
			for pos := run.Start; pos < run.End(); {
				r, size := utf8.DecodeRuneInString(text[pos:run.End()])
				next := pos + size
				w := 0.0
				if run.Width > 0 {
					w = measureText(ts, run.Font, run.Spacing, text[anchor:next])
				}
				out = append(out, Glyph{
					Index:          pos,
					Next:           next,
					Line:           li,
					BaselineOffset: run.BaselineOffset,
					Rect:           Rect{X: anchorX + prev, Y: top, Width: max(w-prev, 0), Height: height},
				})
				if isWrapSpace(r) || isCJKPunct(r) {
					anchor, anchorX, prev = next, anchorX+w, 0
				} else {
					prev = w
				}
				pos = next
			}
		}
		// 强制换行符占据行尾的零宽位置
		for pos := ln.End - ln.BreakLength; pos < ln.End; {
			_, size := utf8.DecodeRuneInString(text[pos:ln.End])
			out = append(out, Glyph{
				Index: pos,
				Next:  pos + size,
				Line:  li,
				Rect:  Rect{X: ln.Rect.Right(), Y: ln.Rect.Y, Height: ln.Rect.Height},
			})
			pos += size
		}
	}
	return out
}

// trimTrailingSpace 去掉行尾的可折行空白。
func trimTrailingSpace(s string) string {
	return strings.TrimRightFunc(s, isWrapSpace)
}

// GlyphAtByteOffset 返回覆盖字节偏移 i 的字形。
func (l *Layout) GlyphAtByteOffset(i int) (Glyph, bool) {
	gs := l.Glyphs()
	k := sort.Search(len(gs), func(k int) bool { return gs[k].Next > i })
	if k < len(gs) && gs[k].Index <= i {
		return gs[k], true
	}
	return Glyph{}, false
}

// LineAtByteOffset 返回包含字节偏移 i 的行号；越界时返回最近的行。
func (l *Layout) LineAtByteOffset(i int) int {
	k := sort.Search(len(l.lines), func(k int) bool { return l.lines[k].End > i })
	return min(k, len(l.lines)-1)
}

// GlyphAtPoint 返回矩形包含点 (x, y) 的字形，用于点击命中测试。
// 零宽字形（行首空白、换行符）永远不会被命中。
func (l *Layout) GlyphAtPoint(x, y float64) (Glyph, bool) {
	for _, g := range l.Glyphs() {
		if g.Rect.Contains(x, y) {
			return g, true
		}
	}
	return Glyph{}, false
}

// ByteOffsetAtPoint 返回离点 (x, y) 最近的光标位置（字节偏移）。
// 先按纵坐标选行，再以字形中点决定落在字形之前还是之后。
func (l *Layout) ByteOffsetAtPoint(x, y float64) int {
	if len(l.lines) == 0 {
		return 0
	}
	li := 0
	for i, ln := range l.lines {
		if ln.Rect.Y <= y {
			li = i
		}
	}
	ln := l.lines[li]
	gs := l.Glyphs()
	k := sort.Search(len(gs), func(k int) bool { return gs[k].Line >= li })
	for ; k < len(gs) && gs[k].Line == li; k++ {
		g := gs[k]
		if g.Index >= ln.End-ln.BreakLength {
			break
		}
		if x < g.Rect.X+g.Rect.Width/2 {
			return g.Index
		}
	}
	return ln.End - ln.BreakLength
}
