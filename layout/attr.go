package layout

import (
	"bytes"
	"encoding/json"
)

// Attr 表示一个可选样式属性：要么未设置（继承默认值），要么设置为具体值。
type Attr[T comparable] struct {
	value T
	set   bool
}

// Set 返回一个已设置的属性。
func Set[T comparable](v T) Attr[T] { return Attr[T]{value: v, set: true} }

// Unset 返回未设置的属性，等价于零值。
func Unset[T comparable]() Attr[T] { return Attr[T]{} }

// Get 返回属性值以及是否已设置。
func (a Attr[T]) Get() (T, bool) { return a.value, a.set }

// IsSet 报告属性是否已设置。
func (a Attr[T]) IsSet() bool { return a.set }

// Or 在属性未设置时返回 def。
func (a Attr[T]) Or(def T) T {
	if a.set {
		return a.value
	}
	return def
}

// Merge 合并多个属性，最右侧已设置的值胜出。
func Merge[T comparable](attrs ...Attr[T]) Attr[T] {
	var out Attr[T]
	for _, a := range attrs {
		if a.set {
			out = a
		}
	}
	return out
}

// MarshalJSON 将未设置的属性输出为 null。
func (a Attr[T]) MarshalJSON() ([]byte, error) {
	if !a.set {
		return []byte("null"), nil
	}
	return json.Marshal(a.value)
}

// UnmarshalJSON 将 null 解析为未设置。
func (a *Attr[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*a = Attr[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*a = Set(v)
	return nil
}
