package markup

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ByLCY/textflow/layout"
)

// Build 将解析后的文档转换为样式文本。标签按嵌套顺序叠加，内层覆盖外层。
func Build(doc *Document) (*layout.StyledText, error) {
	b := &builder{st: layout.NewStyledText("")}
	if doc == nil {
		return b.st, nil
	}
	if err := b.nodes(doc.Nodes, layout.Style{}); err != nil {
		return nil, err
	}
	return b.st, nil
}

// ToStyledText 先用 data 做 ${path} 插值，再解析标记并构建样式文本。
func ToStyledText(src string, data any) (*layout.StyledText, error) {
	doc, err := ParseString(Interpolate(src, data))
	if err != nil {
		return nil, fmt.Errorf("解析标记失败: %w", err)
	}
	return Build(doc)
}

// Read 与 ToStyledText 相同，但从 io.Reader 读取源文本。
func Read(r io.Reader, data any) (*layout.StyledText, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("读取标记失败: %w", err)
	}
	return ToStyledText(string(src), data)
}

type builder struct {
	st *layout.StyledText
}

func (b *builder) nodes(nodes []*Node, style layout.Style) error {
	for _, n := range nodes {
		switch {
		case n.Text != nil:
			b.append(*n.Text, style)
		case n.Escaped != nil:
			b.append(strings.TrimPrefix(*n.Escaped, `\`), style)
		case n.Span != nil:
			if err := b.span(n.Span, style); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *builder) span(sp *Span, outer layout.Style) error {
	if !strings.EqualFold(sp.Tag.Name, sp.Close) {
		return fmt.Errorf("%s: 标签 [%s] 与 [/%s] 不匹配", sp.Pos, sp.Tag.Name, sp.Close)
	}
	over, err := tagStyle(sp.Tag)
	if err != nil {
		return fmt.Errorf("%s: %w", sp.Pos, err)
	}
	return b.nodes(sp.Children, outer.Merge(over))
}

// append 追加文本；与上一个 run 样式相同时直接延长该 run。
func (b *builder) append(s string, style layout.Style) {
	if s == "" {
		return
	}
	if n := len(b.st.Runs); n > 0 {
		last := &b.st.Runs[n-1]
		if last.Style == style && last.End() == len(b.st.Text) {
			b.st.Text += s
			last.Length += len(s)
			return
		}
	}
	b.st.Append(s, style)
}

func tagStyle(tag *Tag) (layout.Style, error) {
	var st layout.Style
	name := strings.ToLower(tag.Name)
	if err := apply(&st, name, tag.Value, ""); err != nil {
		return st, err
	}
	for _, a := range tag.Attrs {
		if err := apply(&st, strings.ToLower(a.Key), a.Value, name); err != nil {
			return st, err
		}
	}
	return st, nil
}

// apply 把一个 key=value 写入样式。owner 是属性所在的标签名，
// 决定 color、width 这类上下文相关的键作用于哪个属性。
func apply(st *layout.Style, key string, value *Value, owner string) error {
	v := value.String()
	switch key {
	case "b", "bold":
		on, err := parseBool(v)
		if err != nil {
			return err
		}
		st.Bold = layout.Set(on)
	case "i", "italic":
		on, err := parseBool(v)
		if err != nil {
			return err
		}
		st.Italic = layout.Set(on)
	case "u", "underline":
		style := layout.UnderlineSingle
		if v != "" {
			style = layout.ParseUnderlineStyle(strings.ToLower(v))
		}
		st.Underline = layout.Set(style)
	case "s", "strike", "del":
		st.Strikethrough = layout.Set(true)
		if v != "" {
			c, err := ParseColor(v)
			if err != nil {
				return err
			}
			st.StrikethroughColor = layout.Set(c)
		}
	case "color", "fg":
		c, err := ParseColor(v)
		if err != nil {
			return err
		}
		switch owner {
		case "u", "underline":
			st.UnderlineColor = layout.Set(c)
		case "s", "strike", "del":
			st.StrikethroughColor = layout.Set(c)
		case "outline":
			st.OutlineColor = layout.Set(c)
		default:
			st.Foreground = layout.Set(c)
		}
	case "bg", "background", "mark":
		c := layout.Color{R: 255, G: 255}
		if v != "" {
			var err error
			if c, err = ParseColor(v); err != nil {
				return err
			}
		}
		st.Background = layout.Set(c)
	case "outline":
		c := layout.Black
		if v != "" {
			var err error
			if c, err = ParseColor(v); err != nil {
				return err
			}
		}
		st.OutlineColor = layout.Set(c)
	case "width":
		if owner != "outline" {
			return fmt.Errorf("width 只能用于 outline 标签")
		}
		w, err := parseNumber(v)
		if err != nil {
			return err
		}
		st.OutlineWidth = layout.Set(w)
	case "font", "family":
		if v == "" {
			return fmt.Errorf("font 标签缺少字体名称")
		}
		st.Family = layout.Set(v)
	case "size":
		size, err := parseSize(v)
		if err != nil {
			return err
		}
		st.Size = layout.Set(size)
	case "sup":
		st.Superscript = layout.Set(true)
		st.Subscript = layout.Set(false)
	case "sub":
		st.Subscript = layout.Set(true)
		st.Superscript = layout.Set(false)
	case "spacing":
		sp, err := parseNumber(v)
		if err != nil {
			return err
		}
		st.CharacterSpacing = layout.Set(sp)
	default:
		return fmt.Errorf("未知标签 %q", key)
	}
	return nil
}

func parseBool(v string) (bool, error) {
	if v == "" {
		return true, nil
	}
	on, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("无效的开关值 %q", v)
	}
	return on, nil
}

// parseSize 解析字号，无单位时按 pt 处理。
func parseSize(v string) (float64, error) {
	l := layout.ParseLength(v)
	if l.Value <= 0 {
		return 0, fmt.Errorf("无效的字号 %q", v)
	}
	if l.Unit == layout.UnitNone {
		return l.Value, nil
	}
	return l.ToPT(), nil
}

// parseNumber 解析排版单位下的长度；带单位时换算为毫米。
func parseNumber(v string) (float64, error) {
	l := layout.ParseLength(v)
	if l.IsZero() {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f, nil
		}
		return 0, fmt.Errorf("无效的数值 %q", v)
	}
	return l.ToMM(), nil
}
