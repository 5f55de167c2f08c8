package layout

import "log/slog"

// FontMetrics 描述字体在给定分辨率下的度量，单位与 TextMeasurer 返回的宽度一致。
// 无法解析的字体返回全零度量。
type FontMetrics struct {
	Ascent             float64 `json:"ascent"`
	Descent            float64 `json:"descent"`
	Leading            float64 `json:"leading"`
	CapHeight          float64 `json:"capHeight"`
	XHeight            float64 `json:"xHeight"`
	UnderlineOffset    float64 `json:"underlineOffset"`
	UnderlineThickness float64 `json:"underlineThickness"`
}

// IsZero 报告度量是否为“字体不可用”的全零哨兵值。
func (m FontMetrics) IsZero() bool { return m == FontMetrics{} }

// FontMetricsProvider 按字体与分辨率提供度量，实现方应自行缓存。
type FontMetricsProvider interface {
	Metrics(font Font, resolution float64) FontMetrics
}

// TextMeasurer 测量一段文本的宽度。宽度对码点不可加（连字），
// 调用方必须测量整段前缀而不是累加单字符宽度。
type TextMeasurer interface {
	MeasureWidth(font Font, s string) float64
}

// Typesetter 是排版核心所需的全部外部能力。
type Typesetter interface {
	FontMetricsProvider
	TextMeasurer
}

// HAlign 为水平对齐方式。
type HAlign int

const (
	AlignLeft HAlign = iota
	AlignCenter
	AlignRight
)

// VAlign 为垂直对齐方式。
type VAlign int

const (
	AlignTop VAlign = iota
	AlignMiddle
	AlignBottom
)

// ParseHAlign 解析 left/center/right（支持 start/end 别名）。
func ParseHAlign(v string) HAlign {
	switch v {
	case "center", "centre":
		return AlignCenter
	case "right", "end":
		return AlignRight
	default:
		return AlignLeft
	}
}

// ParseVAlign 解析 top/middle/bottom。
func ParseVAlign(v string) VAlign {
	switch v {
	case "middle", "center", "centre":
		return AlignMiddle
	case "bottom":
		return AlignBottom
	default:
		return AlignTop
	}
}

// Options 配置一次排版。
type Options struct {
	// Width 是换行宽度预算，同时作为水平对齐的盒宽；<= 0 表示不换行。
	Width float64
	// Height 是垂直对齐的盒高；<= 0 时取文本块高度。
	Height float64
	// NoWrap 在 Width > 0 时仍禁止自动换行。
	NoWrap bool
	HAlign HAlign
	VAlign VAlign
	// Defaults 是调用方提供的默认样式，run 未设置的属性从这里继承。
	Defaults Style
	// Resolution 为 DPI，仅透传给 FontMetricsProvider，<= 0 时为 72。
	Resolution float64
	Logger     *slog.Logger
}

const defaultResolution = 72

func (o Options) resolution() float64 {
	if o.Resolution <= 0 {
		return defaultResolution
	}
	return o.Resolution
}

func (o Options) wraps() bool { return !o.NoWrap && o.Width > 0 }

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}
