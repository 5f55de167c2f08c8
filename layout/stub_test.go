package layout

import (
	"strings"
	"unicode"
)

// stubTypesetter 是测试用的等宽排版后端：半角字符宽 size/2，CJK 字符宽 size。
// 开启 ligatures 后 "fi" 按一个字符宽度计算，用来模拟不可加的整形宽度。
type stubTypesetter struct {
	ligatures bool
	calls     int
}

func (s *stubTypesetter) Metrics(font Font, resolution float64) FontMetrics {
	if font.Family == "missing" {
		return FontMetrics{}
	}
	return FontMetrics{
		Ascent:    font.Size * 0.8,
		Descent:   font.Size * 0.2,
		CapHeight: font.Size * 0.7,
		XHeight:   font.Size * 0.5,
	}
}

func (s *stubTypesetter) MeasureWidth(font Font, text string) float64 {
	s.calls++
	if font.Family == "missing" {
		return 0
	}
	w := 0.0
	for _, r := range text {
		if unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul) {
			w += font.Size
		} else {
			w += font.Size / 2
		}
	}
	if s.ligatures {
		w -= float64(strings.Count(text, "fi")) * font.Size / 2
	}
	return w
}

func lineText(ln Line) string {
	var b strings.Builder
	for _, r := range ln.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

const eps = 1e-9

func near(a, b float64) bool {
	d := a - b
	return d < eps && d > -eps
}
