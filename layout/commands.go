package layout

import (
	"encoding/json"
	"math"
)

// CommandKind 标识绘制命令的类型。
type CommandKind int

const (
	SetForegroundColor CommandKind = iota
	SetBackgroundColor
	SetOutlineColor
	SetOutlineWidth
	SetUnderlineColor
	SetUnderlineStyle
	SetStrikethroughColor
	SetCharacterSpacing
	SetFont
	MoveTo
	FillBackground
	DrawUnderline
	DrawText
	StrokeText
	DrawStrikethrough
)

var commandNames = [...]string{
	SetForegroundColor:    "setForegroundColor",
	SetBackgroundColor:    "setBackgroundColor",
	SetOutlineColor:       "setOutlineColor",
	SetOutlineWidth:       "setOutlineWidth",
	SetUnderlineColor:     "setUnderlineColor",
	SetUnderlineStyle:     "setUnderlineStyle",
	SetStrikethroughColor: "setStrikethroughColor",
	SetCharacterSpacing:   "setCharacterSpacing",
	SetFont:               "setFont",
	MoveTo:                "moveTo",
	FillBackground:        "fillBackground",
	DrawUnderline:         "drawUnderline",
	DrawText:              "drawText",
	StrokeText:            "strokeText",
	DrawStrikethrough:     "drawStrikethrough",
}

func (k CommandKind) String() string {
	if int(k) < len(commandNames) {
		return commandNames[k]
	}
	return "unknown"
}

// MarshalJSON 以名称输出命令类型，便于调试。
func (k CommandKind) MarshalJSON() ([]byte, error) { return json.Marshal(k.String()) }

// IsSet 报告命令是否为状态设置命令。
func (k CommandKind) IsSet() bool { return k <= SetFont }

// DrawCommand 是一条绘制指令。渲染器按顺序重放即可，无需重新计算布局。
// 各字段仅在对应的 Kind 下有意义。
type DrawCommand struct {
	Kind      CommandKind    `json:"op"`
	Color     Color          `json:"color,omitzero"`
	Value     float64        `json:"value,omitempty"` // 描边宽度、字符间距或线条粗细
	Underline UnderlineStyle `json:"underline,omitempty"`
	Font      Font           `json:"font,omitzero"`
	Point     Point          `json:"point,omitzero"` // MoveTo 目标；线条起点
	To        Point          `json:"to,omitzero"`    // 线条终点
	Rect      Rect           `json:"rect,omitzero"`  // 背景矩形
	Text      string         `json:"text,omitempty"`
	Start     int            `json:"start,omitempty"` // 文本在源字符串中的字节偏移
}

// drawState 记录“当前”视觉属性，用于差分。
type drawState struct {
	foreground, background, outline, underlineColor, strikeColor Attr[Color]
	outlineWidth, spacing                                        Attr[float64]
	underline                                                    Attr[UnderlineStyle]
	font                                                         Attr[Font]
}

// commandCompiler 对完成的行做确定性的状态差分遍历。
type commandCompiler struct {
	state drawState
	out   []DrawCommand
}

// compileCommands 为每个 run 输出变化了的 Set 命令，然后按固定的 z 序输出：
// 背景 → 下划线 → 填充文本 → 描边文本 → 删除线。
func compileCommands(lines []Line) []DrawCommand {
	c := &commandCompiler{}
	for _, ln := range lines {
		for _, run := range ln.Runs {
			c.compileRun(ln, run)
		}
	}
	return c.out
}

func (c *commandCompiler) emit(cmd DrawCommand) { c.out = append(c.out, cmd) }

func diff[T comparable](cur *Attr[T], v T) bool {
	if old, ok := cur.Get(); ok && old == v {
		return false
	}
	*cur = Set(v)
	return true
}

func (c *commandCompiler) compileRun(ln Line, run PositionedRun) {
	visible := trimTrailingSpace(run.Text)
	st := run.Style
	fg := st.Foreground.Or(Black)
	bg, hasBg := st.Background.Get()
	outline, hasOutline := st.OutlineColor.Get()
	outlineWidth := st.OutlineWidth.Or(0)
	if hasOutline && outlineWidth <= 0 {
		outlineWidth = math.Max(run.Font.Size/24, 0.5)
	}
	underline := st.Underline.Or(UnderlineNone)
	underlineColor := st.UnderlineColor.Or(fg)
	strike := st.Strikethrough.Or(false)
	strikeColor := st.StrikethroughColor.Or(fg)
	if visible == "" && !hasBg && underline == UnderlineNone {
		return
	}

	if diff(&c.state.foreground, fg) {
		c.emit(DrawCommand{Kind: SetForegroundColor, Color: fg})
	}
	if hasBg && diff(&c.state.background, bg) {
		c.emit(DrawCommand{Kind: SetBackgroundColor, Color: bg})
	}
	if hasOutline {
		if diff(&c.state.outline, outline) {
			c.emit(DrawCommand{Kind: SetOutlineColor, Color: outline})
		}
		if diff(&c.state.outlineWidth, outlineWidth) {
			c.emit(DrawCommand{Kind: SetOutlineWidth, Value: outlineWidth})
		}
	}
	if underline != UnderlineNone {
		if diff(&c.state.underlineColor, underlineColor) {
			c.emit(DrawCommand{Kind: SetUnderlineColor, Color: underlineColor})
		}
		if diff(&c.state.underline, underline) {
			c.emit(DrawCommand{Kind: SetUnderlineStyle, Underline: underline})
		}
	}
	if strike && diff(&c.state.strikeColor, strikeColor) {
		c.emit(DrawCommand{Kind: SetStrikethroughColor, Color: strikeColor})
	}
	if diff(&c.state.spacing, run.Spacing) {
		c.emit(DrawCommand{Kind: SetCharacterSpacing, Value: run.Spacing})
	}
	if diff(&c.state.font, run.Font) {
		c.emit(DrawCommand{Kind: SetFont, Font: run.Font})
	}

	origin := Point{X: run.X, Y: run.Baseline}
	c.emit(DrawCommand{Kind: MoveTo, Point: origin})

	fm := run.Metrics
	if hasBg {
		c.emit(DrawCommand{Kind: FillBackground, Rect: Rect{X: run.X, Y: ln.Rect.Y, Width: run.Width, Height: ln.Rect.Height}})
	}
	if underline != UnderlineNone {
		thickness := underlineThickness(fm, run.Font)
		y := run.Baseline + underlineOffset(fm, thickness)
		c.emitLine(DrawUnderline, run, y, thickness)
		if underline == UnderlineDouble {
			c.emitLine(DrawUnderline, run, y+2*thickness, thickness)
		}
	}
	if visible == "" {
		return
	}
	c.emit(DrawCommand{Kind: DrawText, Text: visible, Font: run.Font, Point: origin, Start: run.Start})
	if hasOutline {
		c.emit(DrawCommand{Kind: StrokeText, Text: visible, Font: run.Font, Point: origin, Start: run.Start})
	}
	if strike {
		thickness := underlineThickness(fm, run.Font)
		height := fm.XHeight
		if height <= 0 {
			height = fm.Ascent / 2
		}
		c.emitLine(DrawStrikethrough, run, run.Baseline-height/2, thickness)
	}
}

func (c *commandCompiler) emitLine(kind CommandKind, run PositionedRun, y, thickness float64) {
	c.emit(DrawCommand{
		Kind:  kind,
		Point: Point{X: run.X, Y: y},
		To:    Point{X: run.X + run.Width, Y: y},
		Value: thickness,
		Start: run.Start,
	})
}

func underlineThickness(fm FontMetrics, font Font) float64 {
	if fm.UnderlineThickness > 0 {
		return fm.UnderlineThickness
	}
	return font.Size / 18
}

// underlineOffset 返回下划线相对基线向下的距离。
func underlineOffset(fm FontMetrics, thickness float64) float64 {
	if fm.UnderlineOffset > 0 {
		return fm.UnderlineOffset
	}
	return max(fm.Descent/3, thickness)
}
