package layout

import "unicode/utf8"

// wrapResult 描述一次折行决策，索引均为源文本中的绝对字节偏移。
//   - keepEnd：保留在当前行的可见内容结束位置（不含行尾空白）
//   - nextStart：下一行内容的起点（跳过行尾空白）
//   - width：[start, keepEnd) 的测量宽度
type wrapResult struct {
	keepEnd   int
	nextStart int
	width     float64
}

func (r wrapResult) empty(start int) bool { return r.nextStart <= start }

// wrapper 在一个 subRun 内决定折行位置。
type wrapper struct {
	text string
	ts   TextMeasurer
}

// measure 测量 text[start:end]，字符间距按码点数累加。
func (w *wrapper) measure(font Font, spacing float64, start, end int) float64 {
	return measureText(w.ts, font, spacing, w.text[start:end])
}

func measureText(ts TextMeasurer, font Font, spacing float64, s string) float64 {
	if s == "" {
		return 0
	}
	width := ts.MeasureWidth(font, s)
	if spacing != 0 {
		width += spacing * float64(utf8.RuneCountInString(s))
	}
	return width
}

// wrap 在 [start, start+length) 内寻找折行点。budget 为整行宽度预算，used 为本行已占用的宽度，
// lineStart 为本行起点（缩进）；used 超过 lineStart 才说明本行已有内容。
func (w *wrapper) wrap(start, length int, font Font, spacing, budget, used, lineStart float64) wrapResult {
	zero := wrapResult{keepEnd: start, nextStart: start}
	end := start + length
	if length <= 0 {
		return zero
	}
	if budget <= 0 {
		return wrapResult{keepEnd: end, nextStart: end, width: w.measure(font, spacing, start, end)}
	}
	if used >= budget {
		return zero
	}
	avail := budget - used
	occupied := used > lineStart

	keep, next, keepWidth := start, start, 0.0
	for pos := start; pos < end; {
		wordEnd := w.scan(pos, end, false)
		spaceEnd := w.scan(wordEnd, end, true)
		width := w.measure(font, spacing, start, wordEnd)
		if width > avail {
			if keep > start || (next > start && occupied) {
				return wrapResult{keepEnd: keep, nextStart: next, width: keepWidth}
			}
			// 没有可以回退的前一个词
			if occupied && width <= budget {
				return zero
			}
			return w.splitWord(start, wordEnd, font, spacing, avail)
		}
		keep, next, keepWidth = wordEnd, spaceEnd, width
		pos = spaceEnd
	}
	// 仅行尾空白超出预算
	return wrapResult{keepEnd: keep, nextStart: next, width: keepWidth}
}

// scan 从 pos 开始跳过空白（spaces=true）或非空白字符，返回停止位置。
func (w *wrapper) scan(pos, end int, spaces bool) int {
	for pos < end {
		r, size := utf8.DecodeRuneInString(w.text[pos:end])
		if isWrapSpace(r) != spaces {
			break
		}
		pos += size
	}
	return pos
}

// splitWord 对超长单词做字符级切分：反复测量累计前缀（整形可能不可加），
// 取最后一个能放下的前缀，再向前寻找最近的文字类别切换点。
func (w *wrapper) splitWord(start, end int, font Font, spacing, avail float64) wrapResult {
	fit, fitWidth := start, 0.0
	for pos := start; pos < end; {
		_, size := utf8.DecodeRuneInString(w.text[pos:end])
		width := w.measure(font, spacing, start, pos+size)
		if width > avail {
			break
		}
		fit, fitWidth = pos+size, width
		pos += size
	}
	if fit == start {
		return wrapResult{keepEnd: start, nextStart: start}
	}
	if fit < end {
		if split := w.lastTransition(start, fit, end); split > start && split < fit {
			return wrapResult{keepEnd: split, nextStart: split, width: w.measure(font, spacing, start, split)}
		}
	}
	return wrapResult{keepEnd: fit, nextStart: fit, width: fitWidth}
}

// lastTransition 从 fit 向前查找最近的类别切换边界，找不到返回 start。
func (w *wrapper) lastTransition(start, fit, end int) int {
	after, _ := utf8.DecodeRuneInString(w.text[fit:end])
	next := classify(after)
	for pos := fit; pos > start; {
		r, size := utf8.DecodeLastRuneInString(w.text[start:pos])
		cls := classify(r)
		if cls != next {
			return pos
		}
		next = cls
		pos -= size
	}
	return start
}
