package markup

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ByLCY/textflow/layout"
)

var namedColors = map[string]layout.Color{
	"black":   {},
	"white":   {R: 255, G: 255, B: 255},
	"red":     {R: 255},
	"green":   {G: 128},
	"lime":    {G: 255},
	"blue":    {B: 255},
	"yellow":  {R: 255, G: 255},
	"orange":  {R: 255, G: 165},
	"purple":  {R: 128, B: 128},
	"gray":    {R: 128, G: 128, B: 128},
	"grey":    {R: 128, G: 128, B: 128},
	"navy":    {B: 128},
	"teal":    {G: 128, B: 128},
	"maroon":  {R: 128},
	"silver":  {R: 192, G: 192, B: 192},
	"magenta": {R: 255, B: 255},
	"cyan":    {G: 255, B: 255},
}

// ParseColor 解析 #rgb、#rrggbb、#rrggbbaa（忽略 alpha）或常见颜色名。
func ParseColor(value string) (layout.Color, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if c, ok := namedColors[v]; ok {
		return c, nil
	}
	hex := strings.TrimPrefix(v, "#")
	switch len(hex) {
	case 3:
		hex = strings.Repeat(hex[0:1], 2) + strings.Repeat(hex[1:2], 2) + strings.Repeat(hex[2:3], 2)
	case 6, 8:
		hex = hex[:6]
	default:
		return layout.Color{}, fmt.Errorf("无法识别的颜色 %q", value)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return layout.Color{}, fmt.Errorf("无法识别的颜色 %q: %w", value, err)
	}
	return layout.Color{R: int(n >> 16 & 0xff), G: int(n >> 8 & 0xff), B: int(n & 0xff)}, nil
}
