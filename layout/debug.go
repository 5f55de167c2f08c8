package layout

import (
	"encoding/json"
	"os"
)

// debugDump 是调试 JSON 的顶层结构。
type debugDump struct {
	Text     string        `json:"text"`
	Metrics  Metrics       `json:"metrics"`
	Lines    []Line        `json:"lines"`
	Commands []DrawCommand `json:"commands"`
	Glyphs   []Glyph       `json:"glyphs,omitempty"`
}

// MarshalDebugJSON 将布局结果（含惰性字段）编码为缩进 JSON。
func MarshalDebugJSON(l *Layout, withGlyphs bool) ([]byte, error) {
	dump := debugDump{
		Text:     l.Text(),
		Metrics:  l.Metrics(),
		Lines:    l.Lines(),
		Commands: l.Commands(),
	}
	if withGlyphs {
		dump.Glyphs = l.Glyphs()
	}
	return json.MarshalIndent(dump, "", "  ")
}

// WriteDebugJSON 将布局结果输出为 JSON，便于调试或可视化。
func WriteDebugJSON(l *Layout, path string, withGlyphs bool) error {
	if l == nil {
		return nil
	}
	data, err := MarshalDebugJSON(l, withGlyphs)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
