package layout

import (
	"slices"
	"unicode/utf8"
)

// scriptScale 是上下标字体相对正文字号的缩放比例。
const scriptScale = 0.65

// resolvedRun 缓存一个 normalized run 的字体解析结果，每次排版每个 run 只解析一次。
type resolvedRun struct {
	style       Style
	font        Font // 实际绘制字体（上下标已缩小）
	metrics     FontMetrics
	fullMetrics FontMetrics // 未缩小字体的度量
	script      Script
	offset      float64
	spacing     float64
}

// lineMetrics 累积一行中参与行高计算的度量。
type lineMetrics struct {
	ascent, descent, leading float64
	set                      bool
}

func (m *lineMetrics) add(fm FontMetrics) {
	m.ascent = max(m.ascent, fm.Ascent)
	m.descent = max(m.descent, fm.Descent)
	m.leading = max(m.leading, fm.Leading)
	m.set = true
}

// lineBuilder 驱动分段与折行，按顺序产出行。
// 状态只有两个：正在累积当前行，或当前行已关闭、即将开新行。
type lineBuilder struct {
	text     string
	runs     []Run
	resolved []*resolvedRun
	ts       Typesetter
	opts     Options
	wrap     wrapper
	multiple float64
	first    float64 // 段首缩进
	indent   float64 // 续行缩进

	lines   []Line
	cur     Line
	x, y    float64
	regular lineMetrics
	scripts lineMetrics
	blank   FontMetrics // 空行使用的度量
	soft    bool        // 当前行由自动折行打开
}

func newLineBuilder(st *StyledText, ts Typesetter, opts Options) *lineBuilder {
	runs := normalizeRuns(st.Text, st.Runs)
	return &lineBuilder{
		text:     st.Text,
		runs:     runs,
		resolved: make([]*resolvedRun, len(runs)),
		ts:       ts,
		opts:     opts,
		wrap:     wrapper{text: st.Text, ts: ts},
		multiple: st.lineHeightMultiple(),
		first:    st.FirstLineIndent,
		indent:   st.Indent,
	}
}

// resolve 合并 run 覆盖、调用方默认与内置兜底，得到字体与上下标偏移。
func (b *lineBuilder) resolve(i int) *resolvedRun {
	if rr := b.resolved[i]; rr != nil {
		return rr
	}
	style := b.opts.Defaults.Merge(b.runs[i].Style)
	full := style.Font(b.opts.Defaults)
	res := b.opts.resolution()
	fm := b.ts.Metrics(full, res)
	rr := &resolvedRun{
		style:       style,
		font:        full,
		metrics:     fm,
		fullMetrics: fm,
		script:      b.runs[i].Style.script(b.opts.Defaults),
		spacing:     style.CharacterSpacing.Or(0),
	}
	if rr.script != ScriptNormal {
		rr.font = full.Scaled(scriptScale)
		rr.metrics = b.ts.Metrics(rr.font, res)
		if rr.script == ScriptSuperscript {
			rr.offset = -(fm.CapHeight - rr.metrics.CapHeight)
		} else {
			rr.offset = fm.Descent - rr.metrics.Descent
		}
	}
	b.resolved[i] = rr
	return rr
}

func (b *lineBuilder) build() []Line {
	subs := segment(b.text, b.runs)
	budget := b.opts.Width
	b.openLine(0, true)
	for i := 0; i < len(subs); i++ {
		sr := subs[i]
		rr := b.resolve(sr.run)
		if sr.forcedBreak {
			b.blank = rr.fullMetrics
			b.cur.BreakLength = sr.length
			b.closeLine(sr.end(), true)
			continue
		}

		if b.soft && len(b.cur.Runs) == 0 {
			// 软换行后的行首空白不占宽度
			if ws := b.wrap.scan(sr.start, sr.end(), true); ws > sr.start {
				b.appendRun(sr.start, ws, 0, rr)
				if ws == sr.end() {
					continue
				}
				sr = subRun{start: ws, length: sr.end() - ws, run: sr.run}
				subs[i] = sr
			}
		}

		width := b.wrap.measure(rr.font, rr.spacing, sr.start, sr.end())
		if !b.opts.wraps() || b.x+width <= budget {
			b.appendRun(sr.start, sr.end(), width, rr)
			continue
		}

		res := b.wrap.wrap(sr.start, sr.length, rr.font, rr.spacing, budget, b.x, b.cur.Rect.X)
		if res.empty(sr.start) {
			if b.hasContent() {
				// 在新行上重新处理同一个 subRun
				b.closeLine(sr.start, false)
				i--
				continue
			}
			// 空行上连一个码点都放不下：至少前进一个码点，避免死循环
			_, size := utf8.DecodeRuneInString(b.text[sr.start:sr.end()])
			next := sr.start + size
			res = wrapResult{keepEnd: next, nextStart: next, width: b.wrap.measure(rr.font, rr.spacing, sr.start, next)}
		}
		b.appendRun(sr.start, res.nextStart, res.width, rr)
		if res.nextStart < sr.end() {
			rest := subRun{start: res.nextStart, length: sr.end() - res.nextStart, run: sr.run}
			subs = slices.Insert(subs, i+1, rest)
			b.closeLine(res.nextStart, false)
		} else if res.keepEnd < sr.end() && i+1 < len(subs) && !subs[i+1].forcedBreak {
			// 只有行尾空白溢出：后面还有内容时才换行，避免在段尾产生空行
			b.closeLine(res.nextStart, false)
		}
	}
	b.closeLine(len(b.text), false)
	return b.lines
}

func (b *lineBuilder) openLine(start int, paragraph bool) {
	x := b.indent
	if paragraph {
		x = b.first
	}
	b.cur = Line{Start: start, Rect: Rect{X: x, Y: b.y}}
	b.x = x
	b.soft = !paragraph
	b.regular = lineMetrics{}
	b.scripts = lineMetrics{}
}

func (b *lineBuilder) hasContent() bool {
	for _, r := range b.cur.Runs {
		if r.Width > 0 {
			return true
		}
	}
	return false
}

func (b *lineBuilder) appendRun(start, end int, width float64, rr *resolvedRun) {
	b.cur.Runs = append(b.cur.Runs, PositionedRun{
		Start:          start,
		Length:         end - start,
		Text:           b.text[start:end],
		Style:          rr.style,
		Font:           rr.font,
		Script:         rr.script,
		X:              b.x,
		Width:          width,
		BaselineOffset: rr.offset,
		Spacing:        rr.spacing,
		Metrics:        rr.metrics,
	})
	b.x += width
	if rr.script == ScriptNormal {
		b.regular.add(rr.metrics)
	} else {
		b.scripts.add(rr.fullMetrics)
	}
	b.blank = rr.fullMetrics
}

// closeLine 结束当前行：确定公共基线、推进 y，并打开下一行。
func (b *lineBuilder) closeLine(end int, forced bool) {
	line := b.cur
	line.End = end

	m := b.regular
	if !m.set {
		m = b.scripts
	}
	visible := m.set
	if !visible {
		m = lineMetrics{ascent: b.blank.Ascent, descent: b.blank.Descent, leading: b.blank.Leading}
	}

	line.LargestAscent = b.multiple * m.ascent
	line.Descent = m.descent
	line.Leading = m.leading
	line.Advance = b.multiple * (m.ascent + m.descent + m.leading)
	line.Rect.Width = b.x - line.Rect.X
	if visible {
		line.Rect.Height = line.LargestAscent + m.descent
	}
	baseline := line.Rect.Y + line.LargestAscent
	for i := range line.Runs {
		line.Runs[i].Baseline = baseline + line.Runs[i].BaselineOffset
	}

	b.lines = append(b.lines, line)
	b.y += line.Advance
	b.openLine(end, forced)
}
