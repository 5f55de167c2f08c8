package layout

import "sync"

// Layout 是一次排版的结果。构造完成后只读，只有 Metrics 与 Glyphs
// 两个字段惰性计算，并由 sync.Once 保证最多计算一次，因此可以被并发读取。
type Layout struct {
	text     string
	lines    []Line
	commands []DrawCommand
	ts       Typesetter
	shift    offsets

	metricsOnce sync.Once
	metrics     Metrics

	glyphOnce sync.Once
	glyphs    []Glyph
}

// New 对样式文本排版：分段 → 逐行构建（按需折行）→ 对齐 → 编译绘制命令。
// st 只在调用期间被借用。
func New(st *StyledText, ts Typesetter, opts Options) *Layout {
	if st == nil {
		st = NewStyledText("")
	}
	b := newLineBuilder(st, ts, opts)
	lines := b.build()
	shift := alignLines(lines, opts, b.multiple)
	l := &Layout{
		text:     st.Text,
		lines:    lines,
		commands: compileCommands(lines),
		ts:       ts,
		shift:    shift,
	}
	opts.logger().Debug("layout built",
		"bytes", len(st.Text),
		"runs", len(b.runs),
		"lines", len(lines),
		"commands", len(l.commands))
	return l
}

// Text 返回源字符串。
func (l *Layout) Text() string { return l.text }

// Lines 返回排好的行，调用方不得修改。
func (l *Layout) Lines() []Line { return l.lines }

// Commands 返回绘制命令序列，调用方不得修改。
func (l *Layout) Commands() []DrawCommand { return l.commands }

// Metrics 返回文本块自身的尺寸，首次调用时计算。
// 对齐只移动文本在盒内的位置，不影响这里的结果；绘制范围见 Bounds。
func (l *Layout) Metrics() Metrics {
	l.metricsOnce.Do(func() {
		natural := make([]Line, len(l.lines))
		for i, ln := range l.lines {
			ln.Rect.X -= l.shift.dx[i]
			ln.Rect.Y -= l.shift.dy
			natural[i] = ln
		}
		w, h := blockSize(natural)
		m := Metrics{Width: w, Height: h}
		if n := len(natural); n > 0 && (w > 0 || h > 0) {
			last := natural[n-1]
			m.AdvanceX = last.Rect.Right()
			m.AdvanceY = last.Rect.Y + last.Advance
		}
		l.metrics = m
	})
	return l.metrics
}

// Bounds 返回对齐之后所有可见行矩形的并集，渲染器据此确定画布大小。
// 没有可见行时返回零矩形。
func (l *Layout) Bounds() Rect {
	var b Rect
	seen := false
	for _, ln := range l.lines {
		r := ln.Rect
		if r.Width <= 0 && r.Height <= 0 {
			continue
		}
		if !seen {
			b, seen = r, true
			continue
		}
		x0, y0 := min(b.X, r.X), min(b.Y, r.Y)
		x1, y1 := max(b.Right(), r.Right()), max(b.Bottom(), r.Bottom())
		b = Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
	}
	return b
}

// Glyphs 返回码点级字形列表，首次调用时计算并缓存。
func (l *Layout) Glyphs() []Glyph {
	l.glyphOnce.Do(func() {
		l.glyphs = extractGlyphs(l.text, l.lines, l.ts)
	})
	return l.glyphs
}
