// Package cells 提供以终端字符格为单位的排版后端，便于在没有字体文件的环境里
// 预览排版结果或生成确定性的测试输出。
package cells

import (
	"bytes"
	"math"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/ByLCY/textflow/layout"
	"github.com/ByLCY/textflow/renderer"
)

var (
	_ layout.Typesetter = (*Typesetter)(nil)
	_ renderer.Renderer = (*Renderer)(nil)
	_ renderer.Sink     = (*grid)(nil)
)

// Typesetter 宽度取 go-runewidth 的显示宽度，每行占一格高度，与字号无关。
type Typesetter struct {
	cond *runewidth.Condition
}

// NewTypesetter 创建字符格排版后端。eastAsian 为 true 时歧义宽度字符按两格计算。
func NewTypesetter(eastAsian bool) *Typesetter {
	cond := runewidth.NewCondition()
	cond.EastAsianWidth = eastAsian
	return &Typesetter{cond: cond}
}

// Metrics 对所有字体返回同样的一格度量。
func (t *Typesetter) Metrics(font layout.Font, resolution float64) layout.FontMetrics {
	return layout.FontMetrics{Ascent: 1, CapHeight: 1, XHeight: 1}
}

// MeasureWidth 返回 s 占用的字符格数。
func (t *Typesetter) MeasureWidth(font layout.Font, s string) float64 {
	return float64(t.cond.StringWidth(s))
}

// Renderer 把绘制命令重放到字符网格上，输出纯文本。
type Renderer struct {
	ts *Typesetter
}

// NewRenderer 创建字符网格渲染器；ts 为空时使用默认宽度规则。
func NewRenderer(ts *Typesetter) *Renderer {
	if ts == nil {
		ts = NewTypesetter(false)
	}
	return &Renderer{ts: ts}
}

// Typesetter 返回与渲染器配套的排版后端。
func (r *Renderer) Typesetter() *Typesetter { return r.ts }

// Render 将布局绘制为按行排列的文本，行尾空白会被去掉。
func (r *Renderer) Render(l *layout.Layout) ([]byte, error) {
	g := &grid{cond: r.ts.cond}
	if err := renderer.Replay(l.Commands(), g); err != nil {
		return nil, err
	}
	return g.bytes(), nil
}

// grid 只关心文本位置，颜色、下划线等装饰在字符格里无法表达，直接忽略。
type grid struct {
	cond *runewidth.Condition
	rows [][]rune
}

// 宽字符右半格的占位符
const continuation = -1

func (g *grid) FillRect(layout.Rect, layout.Color) error { return nil }

func (g *grid) DrawLine(layout.Point, layout.Point, float64, layout.UnderlineStyle, layout.Color) error {
	return nil
}

func (g *grid) StrokeText(string, layout.Font, layout.Point, float64, float64, layout.Color) error {
	return nil
}

func (g *grid) FillText(text string, _ layout.Font, at layout.Point, spacing float64, _ layout.Color) error {
	// 基线位于字符格底边
	row := int(math.Round(at.Y)) - 1
	if row < 0 {
		row = 0
	}
	x := at.X
	for _, r := range text {
		w := g.cond.RuneWidth(r)
		col := int(math.Round(x))
		if col >= 0 && w > 0 {
			g.put(row, col, r)
			for k := 1; k < w; k++ {
				g.put(row, col+k, continuation)
			}
		}
		x += float64(w) + spacing
	}
	return nil
}

func (g *grid) put(row, col int, r rune) {
	for len(g.rows) <= row {
		g.rows = append(g.rows, nil)
	}
	line := g.rows[row]
	for len(line) <= col {
		line = append(line, ' ')
	}
	line[col] = r
	g.rows[row] = line
}

func (g *grid) bytes() []byte {
	var buf bytes.Buffer
	for i, line := range g.rows {
		if i > 0 {
			buf.WriteByte('\n')
		}
		var b strings.Builder
		for _, r := range line {
			if r != continuation {
				b.WriteRune(r)
			}
		}
		buf.WriteString(strings.TrimRight(b.String(), " "))
	}
	return buf.Bytes()
}
