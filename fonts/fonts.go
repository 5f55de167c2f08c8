package fonts

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// 内置字体来自 Go 字体家族，随二进制一起分发，不依赖系统字体。
var builtin = map[string][]byte{
	"Go-Regular":         goregular.TTF,
	"Go-Bold":            gobold.TTF,
	"Go-Italic":          goitalic.TTF,
	"Go-BoldItalic":      gobolditalic.TTF,
	"Go-Mono-Regular":    gomono.TTF,
	"Go-Mono-Bold":       gomonobold.TTF,
	"Go-Mono-Italic":     gomonoitalic.TTF,
	"Go-Mono-BoldItalic": gomonobolditalic.TTF,
}

// Load 返回内置字体的字节数据，name 可写为 "embed:Go-Regular" 或直接 "Go-Regular"，
// 也接受带 .ttf 后缀的写法。
func Load(name string) ([]byte, error) {
	clean := strings.TrimSuffix(strings.TrimPrefix(name, "embed:"), ".ttf")
	data, ok := builtin[clean]
	if !ok {
		return nil, fmt.Errorf("读取内置字体 %s 失败: 不存在", name)
	}
	return data, nil
}

// Names 返回全部内置字体名，按字母排序。
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
