package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"log/slog"
	"math"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/textflow/layout"
	"github.com/ByLCY/textflow/renderer"
)

// defaultMargin 是页面四周留白（mm）。
const defaultMargin = 10.0

// Renderer 通过 github.com/tdewolff/canvas 把绘制命令输出为 PDF。
type Renderer struct {
	ts     *Typesetter
	margin float64
	title  string
	author string
}

var _ renderer.Renderer = (*Renderer)(nil)

// Options configures the canvas renderer.
type Options struct {
	BaseDir string         // 相对字体路径的根目录
	Fonts   []FontResource // 额外注册的字体
	Margin  float64        // 页边距（mm），<=0 时使用默认值
	Title   string
	Author  string
	Logger  *slog.Logger
}

// NewRenderer creates a canvas-based renderer rooted at baseDir for resolving assets.
func NewRenderer(baseDir string) *Renderer { return NewRendererWithOptions(Options{BaseDir: baseDir}) }

// NewRendererWithOptions creates a renderer with injected fonts and page options.
func NewRendererWithOptions(opts Options) *Renderer {
	margin := opts.Margin
	if margin <= 0 {
		margin = defaultMargin
	}
	return &Renderer{
		ts:     NewTypesetter(opts.BaseDir, opts.Logger, opts.Fonts...),
		margin: margin,
		title:  opts.Title,
		author: opts.Author,
	}
}

// Typesetter 返回与渲染器共享字体缓存的排版后端，排版与绘制必须使用同一个实例。
func (r *Renderer) Typesetter() *Typesetter { return r.ts }

// Render 将布局渲染为单页 PDF，页面覆盖对齐后的绘制范围并加上页边距。
func (r *Renderer) Render(l *layout.Layout) ([]byte, error) {
	if l == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	b := l.Bounds()
	// 负坐标（文本比对齐盒更宽）整体平移进页面
	x0, y0 := math.Min(b.X, 0), math.Min(b.Y, 0)
	width := math.Max(b.Right()-x0, 1) + 2*r.margin
	height := math.Max(b.Bottom()-y0, 1) + 2*r.margin

	var buf bytes.Buffer
	writer := pdf.New(&buf, width, height, nil)
	writer.SetInfo(r.title, "", "", r.author, "textflow")

	c := canvas.New(width, height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点
	sink := &contextSink{ctx: ctx, ts: r.ts, dx: r.margin - x0, dy: r.margin - y0}
	if err := renderer.Replay(l.Commands(), sink); err != nil {
		return nil, err
	}
	c.RenderTo(writer)

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

// contextSink 把绘制原语映射到 canvas.Context。
// 坐标系只翻转位置，不翻转路径本身，所以矩形以左下角为锚点向上绘制。
type contextSink struct {
	ctx    *canvas.Context
	ts     *Typesetter
	dx, dy float64
}

var transparent = color.RGBA{0, 0, 0, 0}

func (s *contextSink) FillRect(rc layout.Rect, c layout.Color) error {
	s.ctx.SetFillColor(colorFromLayout(c))
	s.ctx.SetStrokeColor(transparent)
	s.ctx.DrawPath(s.dx+rc.X, s.dy+rc.Y+rc.Height, canvas.Rectangle(rc.Width, rc.Height))
	return nil
}

func (s *contextSink) DrawLine(from, to layout.Point, thickness float64, style layout.UnderlineStyle, c layout.Color) error {
	length := to.X - from.X
	if length <= 0 || thickness <= 0 {
		return nil
	}
	p := &canvas.Path{}
	p.MoveTo(0, 0)
	switch style {
	case layout.UnderlineWavy:
		// 振幅与半周期都取线宽的两倍
		step := 2 * thickness
		up := true
		for x := step; x < length; x += step {
			y := thickness
			if !up {
				y = -thickness
			}
			p.LineTo(x, y)
			up = !up
		}
		p.LineTo(length, 0)
	default:
		p.LineTo(length, to.Y-from.Y)
	}

	s.ctx.SetFillColor(transparent)
	s.ctx.SetStrokeColor(colorFromLayout(c))
	s.ctx.SetStrokeWidth(thickness)
	if style == layout.UnderlineDotted {
		s.ctx.SetDashes(0, thickness, thickness)
		defer s.ctx.SetDashes(0)
	}
	s.ctx.DrawPath(s.dx+from.X, s.dy+from.Y, p)
	return nil
}

func (s *contextSink) FillText(text string, font layout.Font, at layout.Point, spacing float64, c layout.Color) error {
	face, err := s.ts.Face(font, c)
	if err != nil {
		return err
	}
	x, y := s.dx+at.X, s.dy+at.Y
	if spacing == 0 {
		s.ctx.DrawText(x, y, canvas.NewTextLine(face, text, canvas.Left))
		return nil
	}
	// 有字符间距时逐字绘制，每个字符后额外前进 spacing
	for _, r := range text {
		ch := string(r)
		s.ctx.DrawText(x, y, canvas.NewTextLine(face, ch, canvas.Left))
		x += face.TextWidth(ch) + spacing
	}
	return nil
}

func (s *contextSink) StrokeText(text string, font layout.Font, at layout.Point, spacing, width float64, c layout.Color) error {
	face, err := s.ts.Face(font, c)
	if err != nil {
		return err
	}
	s.ctx.SetFillColor(transparent)
	s.ctx.SetStrokeColor(colorFromLayout(c))
	s.ctx.SetStrokeWidth(width)

	x, y := s.dx+at.X, s.dy+at.Y
	runs := []string{text}
	if spacing != 0 {
		runs = runs[:0]
		for _, r := range text {
			runs = append(runs, string(r))
		}
	}
	for _, part := range runs {
		path, advance, err := face.ToPath(part)
		if err != nil {
			return fmt.Errorf("生成文字轮廓失败: %w", err)
		}
		s.ctx.DrawPath(x, y, path)
		x += advance + spacing
	}
	return nil
}
