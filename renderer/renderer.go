package renderer

import (
	"fmt"

	"github.com/ByLCY/textflow/layout"
)

// Renderer 将布局结果输出为最终文件，例如 PDF 或 JSON。
// Render 返回生成的二进制数据以及可能的错误。
type Renderer interface {
	Render(l *layout.Layout) ([]byte, error)
}

// Sink 是绘图后端需要提供的最小绘制原语，坐标与布局一致（左上角为原点）。
type Sink interface {
	FillRect(r layout.Rect, c layout.Color) error
	DrawLine(from, to layout.Point, thickness float64, style layout.UnderlineStyle, c layout.Color) error
	FillText(text string, font layout.Font, at layout.Point, spacing float64, c layout.Color) error
	StrokeText(text string, font layout.Font, at layout.Point, spacing, width float64, c layout.Color) error
}

// replayState 是重放时的“当前”绘制状态。
type replayState struct {
	foreground, background, outline, underlineColor, strikeColor layout.Color
	outlineWidth, spacing                                        float64
	underline                                                    layout.UnderlineStyle
	font                                                         layout.Font
	pos                                                          layout.Point
}

// Replay 按顺序执行绘制命令。命令之间的状态只通过 Set 命令传递，
// 因此任意后端都能在不了解布局细节的情况下还原画面。
func Replay(cmds []layout.DrawCommand, sink Sink) error {
	if sink == nil {
		return fmt.Errorf("绘制目标不能为空")
	}
	st := replayState{underline: layout.UnderlineSingle}
	for i, cmd := range cmds {
		var err error
		switch cmd.Kind {
		case layout.SetForegroundColor:
			st.foreground = cmd.Color
		case layout.SetBackgroundColor:
			st.background = cmd.Color
		case layout.SetOutlineColor:
			st.outline = cmd.Color
		case layout.SetOutlineWidth:
			st.outlineWidth = cmd.Value
		case layout.SetUnderlineColor:
			st.underlineColor = cmd.Color
		case layout.SetUnderlineStyle:
			st.underline = cmd.Underline
		case layout.SetStrikethroughColor:
			st.strikeColor = cmd.Color
		case layout.SetCharacterSpacing:
			st.spacing = cmd.Value
		case layout.SetFont:
			st.font = cmd.Font
		case layout.MoveTo:
			st.pos = cmd.Point
		case layout.FillBackground:
			err = sink.FillRect(cmd.Rect, st.background)
		case layout.DrawUnderline:
			err = sink.DrawLine(cmd.Point, cmd.To, cmd.Value, st.underline, st.underlineColor)
		case layout.DrawText:
			err = sink.FillText(cmd.Text, fontOf(cmd, st), st.pos, st.spacing, st.foreground)
		case layout.StrokeText:
			err = sink.StrokeText(cmd.Text, fontOf(cmd, st), st.pos, st.spacing, st.outlineWidth, st.outline)
		case layout.DrawStrikethrough:
			err = sink.DrawLine(cmd.Point, cmd.To, cmd.Value, layout.UnderlineSingle, st.strikeColor)
		default:
			err = fmt.Errorf("未知的绘制命令 %d", cmd.Kind)
		}
		if err != nil {
			return fmt.Errorf("执行第 %d 条命令 %s 失败: %w", i, cmd.Kind, err)
		}
	}
	return nil
}

func fontOf(cmd layout.DrawCommand, st replayState) layout.Font {
	if cmd.Font != (layout.Font{}) {
		return cmd.Font
	}
	return st.font
}
