package markup

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// placeholder 匹配 ${path}，path 形如 invoice.items[0].sku。
var placeholder = regexp.MustCompile(`\$\{\s*([^}\s][^}]*?)\s*\}`)

// Interpolate 将文本中的 ${path.to.value} 替换为 data 中的值，替换结果会被转义，
// 数据里的方括号不会被当作标签。若 data 为空或路径不存在，则保留原占位符。
func Interpolate(text string, data any) string {
	if data == nil {
		return text
	}
	return placeholder.ReplaceAllStringFunc(text, func(match string) string {
		steps, ok := parsePath(placeholder.FindStringSubmatch(match)[1])
		if !ok {
			return match
		}
		val, ok := lookup(data, steps)
		if !ok {
			return match
		}
		return Escape(format(val))
	})
}

// Escape 转义标记中的特殊字符。
func Escape(s string) string {
	if !strings.ContainsAny(s, `[\`) {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		if r == '[' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// step 是路径中的一步：按键取 map 成员，或按下标取数组元素。
type step struct {
	key   string
	index int
}

func (s step) isIndex() bool { return s.key == "" }

// parsePath 把 a.b[0][1] 拆成 [a b 0 1]。空键、非数字下标、未闭合的括号都算非法。
func parsePath(path string) ([]step, bool) {
	var steps []step
	for _, part := range strings.Split(path, ".") {
		name, rest, _ := strings.Cut(part, "[")
		if name != "" {
			steps = append(steps, step{key: name})
		} else if len(steps) == 0 {
			return nil, false
		}
		if rest == "" {
			if strings.Contains(part, "[") {
				return nil, false
			}
			continue
		}
		for _, idx := range strings.Split(strings.TrimSuffix(rest, "]"), "][") {
			n, err := strconv.Atoi(idx)
			if err != nil || n < 0 {
				return nil, false
			}
			steps = append(steps, step{index: n})
		}
		if !strings.HasSuffix(rest, "]") {
			return nil, false
		}
	}
	return steps, len(steps) > 0
}

func lookup(data any, steps []step) (any, bool) {
	cur := data
	for _, s := range steps {
		var ok bool
		if s.isIndex() {
			cur, ok = element(cur, s.index)
		} else {
			cur, ok = member(cur, s.key)
		}
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func member(cur any, key string) (any, bool) {
	switch c := cur.(type) {
	case map[string]any:
		v, ok := c[key]
		return v, ok
	case map[string]string:
		v, ok := c[key]
		return v, ok
	}
	return nil, false
}

func element(cur any, i int) (any, bool) {
	switch c := cur.(type) {
	case []any:
		if i < len(c) {
			return c[i], true
		}
	case []string:
		if i < len(c) {
			return c[i], true
		}
	}
	return nil, false
}

// format 把 JSON 解码出的数字写成常规小数，避免 1e+06 这样的科学计数法。
func format(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case string:
		return x
	}
	return fmt.Sprint(v)
}
