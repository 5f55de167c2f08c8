package layout

import (
	"fmt"
	"unicode/utf8"
)

// subRun 是被强制换行与折行点进一步切分后的 run，只存在于一次排版过程中。
type subRun struct {
	start       int
	length      int
	run         int // normalized run 下标
	forcedBreak bool
}

func (s subRun) end() int { return s.start + s.length }

// span 表示一个字节区间 [start, end)。
type span struct{ start, end int }

// forcedBreaks 扫描整段文本一次，返回所有强制换行符所在的字节区间。
// "\r\n" 视为一个换行。
func forcedBreaks(text string) []span {
	var out []span
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		switch r {
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				size = 2
			}
			out = append(out, span{i, i + size})
		case '\n', '\v', '\f', '\u0085', '\u2028', '\u2029':
			out = append(out, span{i, i + size})
		}
		i += size
	}
	return out
}

// segment 将 run 按强制换行切分成 subRun：任何 subRun 都不会跨越换行，
// 每个换行本身成为一个 forcedBreak 的 subRun。
func segment(text string, runs []Run) []subRun {
	breaks := forcedBreaks(text)
	out := make([]subRun, 0, len(runs)+2*len(breaks))
	b, covered := 0, 0
	for ri, r := range runs {
		pos, end := max(r.Start, covered), r.End()
		for pos < end {
			for b < len(breaks) && breaks[b].end <= pos {
				b++
			}
			if b < len(breaks) && breaks[b].start <= pos {
				// "\r\n" 跨越 run 边界时整体归入前一个 run
				stop := breaks[b].end
				out = append(out, subRun{start: pos, length: stop - pos, run: ri, forcedBreak: true})
				pos = stop
				continue
			}
			stop := end
			if b < len(breaks) && breaks[b].start < stop {
				stop = breaks[b].start
			}
			out = append(out, subRun{start: pos, length: stop - pos, run: ri})
			pos = stop
		}
		covered = max(covered, pos)
	}
	checkReconstruction(text, out)
	return out
}

// checkReconstruction 校验 subRun 区间按顺序首尾相接并覆盖全文。
func checkReconstruction(text string, subs []subRun) {
	pos := 0
	for _, s := range subs {
		if s.start != pos || s.length <= 0 {
			panic(fmt.Sprintf("layout: subRun [%d,%d) 与期望起点 %d 不连续", s.start, s.end(), pos))
		}
		pos = s.end()
	}
	if len(text) > 0 && pos != len(text) {
		panic(fmt.Sprintf("layout: subRun 覆盖到 %d，文本长度 %d", pos, len(text)))
	}
}
