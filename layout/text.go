package layout

import (
	"sort"
	"unicode/utf8"
)

// Run 是一段共享同一组样式覆盖的连续字节区间。
type Run struct {
	Start  int   `json:"start"`
	Length int   `json:"length"`
	Style  Style `json:"style"`
}

// End 返回 run 结束的字节偏移（不含）。
func (r Run) End() int { return r.Start + r.Length }

// StyledText 持有源字符串、按字节偏移排序的 run 序列以及段落级设置。
type StyledText struct {
	Text string `json:"text"`
	Runs []Run  `json:"runs"`
	// LineHeightMultiple <= 0 视为 1。
	LineHeightMultiple float64 `json:"lineHeightMultiple"`
	FirstLineIndent    float64 `json:"firstLineIndent"`
	Indent             float64 `json:"indent"`
}

// NewStyledText 创建不带任何 run 的样式文本。
func NewStyledText(text string) *StyledText {
	return &StyledText{Text: text, LineHeightMultiple: 1}
}

// AddRun 追加一个 run 并返回自身，便于链式调用。
func (t *StyledText) AddRun(start, length int, style Style) *StyledText {
	t.Runs = append(t.Runs, Run{Start: start, Length: length, Style: style})
	return t
}

// Append 追加一段文本并为其生成 run。
func (t *StyledText) Append(s string, style Style) *StyledText {
	start := len(t.Text)
	t.Text += s
	return t.AddRun(start, len(s), style)
}

func (t *StyledText) lineHeightMultiple() float64 {
	if t.LineHeightMultiple <= 0 {
		return 1
	}
	return t.LineHeightMultiple
}

// normalizeRuns 将 run 排序、裁剪到文本范围内并填补空隙，
// 保证结果有序、不重叠且完整覆盖整个文本。
func normalizeRuns(text string, runs []Run) []Run {
	n := len(text)
	if n == 0 {
		return nil
	}
	sorted := make([]Run, 0, len(runs))
	for _, r := range runs {
		start := clampInt(r.Start, 0, n)
		end := clampInt(r.Start+r.Length, start, n)
		start, end = snapBoundary(text, start), snapBoundary(text, end)
		if end <= start {
			continue
		}
		sorted = append(sorted, Run{Start: start, Length: end - start, Style: r.Style})
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	out := make([]Run, 0, len(sorted)+1)
	pos := 0
	for _, r := range sorted {
		if r.Start > pos {
			out = append(out, Run{Start: pos, Length: r.Start - pos})
		}
		start := max(r.Start, pos)
		if r.End() <= start {
			continue
		}
		out = append(out, Run{Start: start, Length: r.End() - start, Style: r.Style})
		pos = r.End()
	}
	if pos < n {
		out = append(out, Run{Start: pos, Length: n - pos})
	}
	return out
}

// snapBoundary 将偏移回退到最近的码点起始位置。
func snapBoundary(text string, i int) int {
	for i > 0 && i < len(text) && !utf8.RuneStart(text[i]) {
		i--
	}
	return i
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
