package layout

// 该文件定义排版结果类型，供命令编译、字形索引、渲染器与调试 JSON 共用。

// Point 是布局坐标系中的一个点（y 轴向下）。
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect 是布局坐标系中的矩形。
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Contains 报告点是否落在矩形内（含左上边界）。
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Bottom 返回矩形下边界。
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Right 返回矩形右边界。
func (r Rect) Right() float64 { return r.X + r.Width }

// PositionedRun 是放置在某一行上的 subRun。
type PositionedRun struct {
	Start  int    `json:"start"`
	Length int    `json:"length"`
	Text   string `json:"text"`
	// Style 为默认样式与 run 覆盖合并后的结果。
	Style  Style  `json:"style"`
	Font   Font   `json:"font"`
	Script Script `json:"script"`
	// X 为绝对横坐标，Baseline 为绝对基线纵坐标（已包含上下标偏移）。
	X              float64     `json:"x"`
	Baseline       float64     `json:"baseline"`
	Width          float64     `json:"width"`
	BaselineOffset float64     `json:"baselineOffset"`
	Spacing        float64     `json:"spacing"`
	Metrics        FontMetrics `json:"metrics"`
}

// End 返回 run 结束的字节偏移（不含）。
func (r PositionedRun) End() int { return r.Start + r.Length }

// Ascent 返回 run 字体的上升高度。
func (r PositionedRun) Ascent() float64 { return r.Metrics.Ascent }

// Descent 返回 run 字体的下降高度。
func (r PositionedRun) Descent() float64 { return r.Metrics.Descent }

// Line 是排版后的一行。Rect 位于布局局部坐标中，对齐之后不再改变。
type Line struct {
	Runs []PositionedRun `json:"runs"`
	Rect Rect            `json:"rect"`
	// LargestAscent 是决定本行公共基线的上升高度（已乘行高倍数）。
	LargestAscent float64 `json:"largestAscent"`
	Descent       float64 `json:"descent"`
	Leading       float64 `json:"leading"`
	// Advance 为本行占用的纵向步进：lineHeightMultiple * (height + leading)。
	Advance float64 `json:"advance"`
	// [Start, End) 覆盖本行全部字节，包括行尾空白与强制换行符。
	Start       int `json:"start"`
	End         int `json:"end"`
	BreakLength int `json:"breakLength,omitempty"`
}

// Baseline 返回本行公共基线的绝对纵坐标。
func (l Line) Baseline() float64 { return l.Rect.Y + l.LargestAscent }

// Metrics 是整个布局的尺寸信息。
type Metrics struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	// AdvanceX 为最后一行结束处的横坐标，AdvanceY 为下一行应开始的纵坐标，
	// 供拼接多个布局的调用方使用。
	AdvanceX float64 `json:"advanceX"`
	AdvanceY float64 `json:"advanceY"`
}

// Glyph 对应一个 Unicode 码点。
type Glyph struct {
	Index          int     `json:"index"`
	Next           int     `json:"next"`
	Line           int     `json:"line"`
	BaselineOffset float64 `json:"baselineOffset"`
	Rect           Rect    `json:"rect"`
}
