package canvasrenderer

import (
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/textflow/fonts"
	"github.com/ByLCY/textflow/layout"
)

// FontResource 描述一个可注册的字体文件，可以由 Bytes 或 Path 提供。
// Src 支持 "embed:Go-Regular" 形式的内置字体。
type FontResource struct {
	Family string
	Style  string // regular / bold / italic / bold italic
	Src    string
	Bytes  []byte
}

// 内置字体族及其别名。
var builtinFamilies = map[string]string{
	"go":         "Go",
	"sans-serif": "Go",
	"sans":       "Go",
	"serif":      "Go",
	"go mono":    "Go-Mono",
	"monospace":  "Go-Mono",
	"mono":       "Go-Mono",
}

// builtinStyles 对应内置字体文件名的后缀。
var builtinStyles = []struct {
	suffix string
	style  canvas.FontStyle
}{
	{"Regular", canvas.FontRegular},
	{"Bold", canvas.FontBold},
	{"Italic", canvas.FontItalic},
	{"BoldItalic", canvas.FontBold | canvas.FontItalic},
}

type faceKey struct {
	font  layout.Font
	color layout.Color
}

// Typesetter 用 tdewolff/canvas 的字体系统实现 layout.Typesetter。
// 字号以 pt 传入，返回的宽度与度量以 mm 为单位。
type Typesetter struct {
	baseDir string
	logger  *slog.Logger

	mu        sync.Mutex
	resources map[string][]FontResource // 按小写族名
	families  map[string]*canvas.FontFamily
	missing   map[string]bool
	faces     map[faceKey]*canvas.FontFace
}

var _ layout.Typesetter = (*Typesetter)(nil)

// NewTypesetter 创建排版后端。baseDir 用于解析相对路径的字体文件。
func NewTypesetter(baseDir string, logger *slog.Logger, resources ...FontResource) *Typesetter {
	if logger == nil {
		logger = slog.Default()
	}
	t := &Typesetter{
		baseDir:   baseDir,
		logger:    logger,
		resources: map[string][]FontResource{},
		families:  map[string]*canvas.FontFamily{},
		missing:   map[string]bool{},
		faces:     map[faceKey]*canvas.FontFace{},
	}
	for _, res := range resources {
		key := strings.ToLower(res.Family)
		if key == "" {
			continue
		}
		t.resources[key] = append(t.resources[key], res)
	}
	return t
}

// Metrics 返回字体度量（mm）。找不到字体族时返回零度量。
func (t *Typesetter) Metrics(font layout.Font, resolution float64) layout.FontMetrics {
	t.mu.Lock()
	defer t.mu.Unlock()
	face := t.face(font, layout.Black)
	if face == nil {
		return layout.FontMetrics{}
	}
	m := face.Metrics()
	return layout.FontMetrics{
		Ascent:    m.Ascent,
		Descent:   m.Descent,
		Leading:   m.LineGap,
		CapHeight: m.CapHeight,
		XHeight:   m.XHeight,
	}
}

// MeasureWidth 返回文本宽度（mm），找不到字体族时为 0。
func (t *Typesetter) MeasureWidth(font layout.Font, s string) float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	face := t.face(font, layout.Black)
	if face == nil {
		return 0
	}
	return face.TextWidth(s)
}

// Face 返回指定颜色的字体面，供绘制使用。
func (t *Typesetter) Face(font layout.Font, col layout.Color) (*canvas.FontFace, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	face := t.face(font, col)
	if face == nil {
		return nil, fmt.Errorf("找不到字体族 %q", font.Family)
	}
	return face, nil
}

// face 必须在持有 t.mu 时调用。
func (t *Typesetter) face(font layout.Font, col layout.Color) *canvas.FontFace {
	key := faceKey{font: font, color: col}
	if face, ok := t.faces[key]; ok {
		return face
	}
	family := t.family(font.Family)
	if family == nil || font.Size <= 0 {
		return nil
	}
	style := canvas.FontRegular
	if font.Bold {
		style = canvas.FontBold
	}
	if font.Italic {
		style |= canvas.FontItalic
	}
	face := family.Face(font.Size, colorFromLayout(col), style, canvas.FontNormal)
	t.faces[key] = face
	return face
}

func (t *Typesetter) family(name string) *canvas.FontFamily {
	key := strings.ToLower(strings.TrimSpace(name))
	if family, ok := t.families[key]; ok {
		return family
	}
	if t.missing[key] {
		return nil
	}
	family, err := t.loadFamily(key, name)
	if err != nil {
		t.missing[key] = true
		t.logger.Warn("font family unavailable, measuring as zero width", "family", name, "err", err)
		return nil
	}
	t.families[key] = family
	return family
}

func (t *Typesetter) loadFamily(key, name string) (*canvas.FontFamily, error) {
	family := canvas.NewFontFamily(name)
	if resources, ok := t.resources[key]; ok {
		for _, res := range resources {
			data, err := t.loadFontBytes(res)
			if err != nil {
				return nil, err
			}
			if err := family.LoadFont(data, 0, parseFontStyle(res.Style)); err != nil {
				return nil, fmt.Errorf("加载字体 %s 失败: %w", res.Family, err)
			}
		}
		return family, nil
	}
	prefix, ok := builtinFamilies[key]
	if !ok {
		return nil, fmt.Errorf("未注册的字体族 %q", name)
	}
	for _, s := range builtinStyles {
		data, err := fonts.Load(prefix + "-" + s.suffix)
		if err != nil {
			return nil, err
		}
		if err := family.LoadFont(data, 0, s.style); err != nil {
			return nil, fmt.Errorf("加载内置字体 %s-%s 失败: %w", prefix, s.suffix, err)
		}
	}
	return family, nil
}

func (t *Typesetter) loadFontBytes(res FontResource) ([]byte, error) {
	if len(res.Bytes) > 0 {
		return res.Bytes, nil
	}
	src := res.Src
	if src == "" {
		return nil, fmt.Errorf("字体 %s 缺少 src", res.Family)
	}
	if strings.HasPrefix(src, "embed:") {
		return fonts.Load(src)
	}
	if t.baseDir == "" && !filepath.IsAbs(src) {
		return nil, fmt.Errorf("未指定资源目录时不允许直接使用字体路径：%s（请改用 embed:）", src)
	}
	if !filepath.IsAbs(src) {
		src = filepath.Join(t.baseDir, src)
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("读取字体 %s 失败: %w", res.Src, err)
	}
	return data, nil
}

func parseFontStyle(style string) canvas.FontStyle {
	s := strings.ToLower(style)
	result := canvas.FontRegular
	switch {
	case strings.Contains(s, "black"):
		result = canvas.FontBlack
	case strings.Contains(s, "extrabold"):
		result = canvas.FontExtraBold
	case strings.Contains(s, "semibold"), strings.Contains(s, "demibold"):
		result = canvas.FontSemiBold
	case strings.Contains(s, "bold"):
		result = canvas.FontBold
	case strings.Contains(s, "medium"):
		result = canvas.FontMedium
	case strings.Contains(s, "light"):
		result = canvas.FontLight
	}
	if strings.Contains(s, "italic") || strings.Contains(s, "oblique") {
		result |= canvas.FontItalic
	}
	return result
}

func colorFromLayout(c layout.Color) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, 1.0)
}
