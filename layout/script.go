package layout

import (
	"unicode"

	"golang.org/x/text/width"
)

// scriptClass 是折行启发式使用的粗粒度文字类别。
type scriptClass int

const (
	classOther scriptClass = iota
	classKanji
	classHiragana
	classKatakana
	classHangul
	classCJKPunct
	classFullwidthLatin
)

// classify 返回码点所属的粗粒度类别。
// 这张表是一种策略选择，并不对应任何正式的断行规则。
func classify(r rune) scriptClass {
	switch {
	case isCJKPunct(r):
		return classCJKPunct
	case unicode.Is(unicode.Hiragana, r):
		return classHiragana
	case unicode.Is(unicode.Katakana, r), r == '\u30FC':
		return classKatakana
	case unicode.Is(unicode.Han, r):
		return classKanji
	case unicode.Is(unicode.Hangul, r):
		return classHangul
	case isFullwidthLatin(r):
		return classFullwidthLatin
	default:
		return classOther
	}
}

// isCJKPunct 覆盖 CJK 符号与标点区以及半角/全角形式中的标点。
func isCJKPunct(r rune) bool {
	switch {
	case r >= 0x3000 && r <= 0x303F:
		return true
	case r >= 0xFF01 && r <= 0xFF0F, r >= 0xFF1A && r <= 0xFF20,
		r >= 0xFF3B && r <= 0xFF40, r >= 0xFF5B && r <= 0xFF65:
		return true
	}
	return false
}

func isFullwidthLatin(r rune) bool {
	if width.LookupRune(r).Kind() != width.EastAsianFullwidth {
		return false
	}
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// isWrapSpace 报告码点是否为可折行的空白。
func isWrapSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\u3000', '\u180E', '\u205F':
		return true
	}
	return r >= '\u2000' && r <= '\u200B'
}
