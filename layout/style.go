package layout

import "fmt"

// 该文件定义样式模型：颜色、字体、下划线样式以及每个 run 可覆盖的样式集合。

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// Black 是默认前景色。
var Black = Color{}

// Hex 返回 #rrggbb 形式的颜色字符串。
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", clampByte(c.R), clampByte(c.G), clampByte(c.B))
}

func clampByte(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// UnderlineStyle 描述下划线的绘制方式。
type UnderlineStyle int

const (
	UnderlineNone UnderlineStyle = iota
	UnderlineSingle
	UnderlineDouble
	UnderlineDotted
	UnderlineWavy
)

// String 返回下划线样式的名称。
func (u UnderlineStyle) String() string {
	switch u {
	case UnderlineSingle:
		return "single"
	case UnderlineDouble:
		return "double"
	case UnderlineDotted:
		return "dotted"
	case UnderlineWavy:
		return "wavy"
	default:
		return "none"
	}
}

// ParseUnderlineStyle 解析下划线样式名称，未知名称按 single 处理。
func ParseUnderlineStyle(name string) UnderlineStyle {
	switch name {
	case "none", "off", "false":
		return UnderlineNone
	case "double":
		return UnderlineDouble
	case "dotted", "dot":
		return UnderlineDotted
	case "wavy", "wave", "squiggle":
		return UnderlineWavy
	default:
		return UnderlineSingle
	}
}

// Font 是完全解析后的字体描述，Size 以 pt 为单位。
type Font struct {
	Family string  `json:"family"`
	Size   float64 `json:"size"`
	Bold   bool    `json:"bold,omitempty"`
	Italic bool    `json:"italic,omitempty"`
}

// Scaled 返回按比例缩放字号后的字体。
func (f Font) Scaled(factor float64) Font {
	f.Size *= factor
	return f
}

// fallbackFont 是内置兜底字体，调用方未提供默认值时使用。
var fallbackFont = Font{Family: "sans-serif", Size: 12}

// Style 保存一个 run 的样式覆盖，每个属性都可以独立地设置或继承默认值。
type Style struct {
	Family             Attr[string]         `json:"family"`
	Size               Attr[float64]        `json:"size"`
	Bold               Attr[bool]           `json:"bold"`
	Italic             Attr[bool]           `json:"italic"`
	Foreground         Attr[Color]          `json:"foreground"`
	Background         Attr[Color]          `json:"background"`
	OutlineColor       Attr[Color]          `json:"outlineColor"`
	OutlineWidth       Attr[float64]        `json:"outlineWidth"`
	Underline          Attr[UnderlineStyle] `json:"underline"`
	UnderlineColor     Attr[Color]          `json:"underlineColor"`
	Strikethrough      Attr[bool]           `json:"strikethrough"`
	StrikethroughColor Attr[Color]          `json:"strikethroughColor"`
	Superscript        Attr[bool]           `json:"superscript"`
	Subscript          Attr[bool]           `json:"subscript"`
	CharacterSpacing   Attr[float64]        `json:"characterSpacing"`
}

// Merge 返回 s 被 over 覆盖后的样式：over 中已设置的属性胜出。
func (s Style) Merge(over Style) Style {
	return Style{
		Family:             Merge(s.Family, over.Family),
		Size:               Merge(s.Size, over.Size),
		Bold:               Merge(s.Bold, over.Bold),
		Italic:             Merge(s.Italic, over.Italic),
		Foreground:         Merge(s.Foreground, over.Foreground),
		Background:         Merge(s.Background, over.Background),
		OutlineColor:       Merge(s.OutlineColor, over.OutlineColor),
		OutlineWidth:       Merge(s.OutlineWidth, over.OutlineWidth),
		Underline:          Merge(s.Underline, over.Underline),
		UnderlineColor:     Merge(s.UnderlineColor, over.UnderlineColor),
		Strikethrough:      Merge(s.Strikethrough, over.Strikethrough),
		StrikethroughColor: Merge(s.StrikethroughColor, over.StrikethroughColor),
		Superscript:        Merge(s.Superscript, over.Superscript),
		Subscript:          Merge(s.Subscript, over.Subscript),
		CharacterSpacing:   Merge(s.CharacterSpacing, over.CharacterSpacing),
	}
}

// Font 按 run 覆盖 → 调用方默认 → 内置兜底 的顺序逐项解析字体。
func (s Style) Font(defaults Style) Font {
	return Font{
		Family: Merge(Set(fallbackFont.Family), defaults.Family, s.Family).Or(""),
		Size:   Merge(Set(fallbackFont.Size), defaults.Size, s.Size).Or(0),
		Bold:   Merge(Set(fallbackFont.Bold), defaults.Bold, s.Bold).Or(false),
		Italic: Merge(Set(fallbackFont.Italic), defaults.Italic, s.Italic).Or(false),
	}
}

// Script 标记 run 是否为上标或下标。
type Script int

const (
	ScriptNormal Script = iota
	ScriptSuperscript
	ScriptSubscript
)

func (s Style) script(defaults Style) Script {
	merged := defaults.Merge(s)
	switch {
	case merged.Superscript.Or(false):
		return ScriptSuperscript
	case merged.Subscript.Or(false):
		return ScriptSubscript
	default:
		return ScriptNormal
	}
}
