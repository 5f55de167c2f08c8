package layout

import (
	"strings"
	"testing"
)

func build(text string, runs []Run, opts Options) *Layout {
	st := NewStyledText(text)
	st.Runs = runs
	return New(st, &stubTypesetter{}, opts)
}

// 场景 A：无 run、无宽度预算时得到一行两个字形。
func TestLayoutSingleLineNoBudget(t *testing.T) {
	l := build("ab", nil, Options{})
	if n := len(l.Lines()); n != 1 {
		t.Fatalf("expected 1 line, got %d", n)
	}
	gs := l.Glyphs()
	if len(gs) != 2 {
		t.Fatalf("expected 2 glyphs, got %d", len(gs))
	}
	if gs[0].Index != 0 || gs[0].Next != 1 || gs[1].Index != 1 || gs[1].Next != 2 {
		t.Fatalf("unexpected glyph offsets: %+v", gs)
	}
}

// 场景 B：宽度只能容纳 "hello" 时折成两行，行尾空格不计入宽度。
func TestLayoutWrapsAtWord(t *testing.T) {
	l := build("hello world", nil, Options{Width: 40})
	lines := l.Lines()
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if got := strings.TrimSpace(lineText(lines[0])); got != "hello" {
		t.Fatalf("line 1 = %q", got)
	}
	if !near(lines[0].Rect.Width, 30) {
		t.Fatalf("line 1 width must exclude the trailing space, got %g", lines[0].Rect.Width)
	}
	if got := lineText(lines[1]); got != "world" {
		t.Fatalf("line 2 = %q", got)
	}
}

// 场景 C：超长单词触发字符级切分，每行都不超过预算。
func TestLayoutSplitsOverlongWord(t *testing.T) {
	text := "supercalifragilisticexpialidocious"
	l := build(text, nil, Options{Width: 100})
	lines := l.Lines()
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	var joined string
	for i, ln := range lines {
		if ln.Rect.Width > 100 {
			t.Fatalf("line %d exceeds budget: %g", i, ln.Rect.Width)
		}
		joined += lineText(ln)
	}
	if joined != text {
		t.Fatalf("lines must reassemble the word, got %q", joined)
	}
}

// 场景 D：强制换行总是产生两行，换行符本身不贡献宽度。
func TestLayoutForcedBreak(t *testing.T) {
	for _, width := range []float64{0, 20, 1000} {
		l := build("line1\nline2", nil, Options{Width: width})
		lines := l.Lines()
		if len(lines) != 2 {
			t.Fatalf("width=%g: expected 2 lines, got %d", width, len(lines))
		}
		if lineText(lines[0]) != "line1" || lines[0].End != 6 || lines[0].BreakLength != 1 {
			t.Fatalf("width=%g: unexpected first line %+v", width, lines[0])
		}
		if !near(lines[0].Rect.Width, 30) {
			t.Fatalf("width=%g: break must not add width, got %g", width, lines[0].Rect.Width)
		}
	}
}

// 场景 E：下标不改变行高，其基线比正文基线低“下标字体的下降差”。
func TestLayoutSubscriptBaseline(t *testing.T) {
	sub := Style{Subscript: Set(true)}
	l := build("H2", []Run{{Start: 1, Length: 1, Style: sub}}, Options{})
	plain := build("H", nil, Options{})

	ln := l.Lines()[0]
	if !near(ln.Rect.Height, plain.Lines()[0].Rect.Height) {
		t.Fatalf("subscript changed line height: %g vs %g", ln.Rect.Height, plain.Lines()[0].Rect.Height)
	}
	if len(ln.Runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(ln.Runs))
	}
	normal, script := ln.Runs[0], ln.Runs[1]
	wantDelta := 12*0.2 - 12*scriptScale*0.2
	if !near(script.Baseline-normal.Baseline, wantDelta) {
		t.Fatalf("subscript baseline delta: got %g want %g", script.Baseline-normal.Baseline, wantDelta)
	}
	if !near(script.Font.Size, 12*scriptScale) {
		t.Fatalf("subscript font not shrunk: %g", script.Font.Size)
	}
}

func TestLayoutSuperscriptAlignsCapHeight(t *testing.T) {
	sup := Style{Superscript: Set(true)}
	l := build("x2", []Run{{Start: 1, Length: 1, Style: sup}}, Options{})
	normal, script := l.Lines()[0].Runs[0], l.Lines()[0].Runs[1]
	// 缩小后字体的大写高度顶部与正文大写高度顶部对齐
	if !near(script.Baseline-script.Metrics.CapHeight, normal.Baseline-normal.Metrics.CapHeight) {
		t.Fatalf("superscript cap-height misaligned")
	}
}

func TestLayoutRespectsWrapWidth(t *testing.T) {
	text := "The quick brown fox jumps over the lazy dog; pack my box with five dozen liquor jugs."
	for _, width := range []float64{7, 25, 48, 90, 133} {
		l := build(text, []Run{{Start: 4, Length: 11, Style: Style{Size: Set(18.0)}}}, Options{Width: width})
		for i, ln := range l.Lines() {
			if ln.Rect.Right() <= width+eps {
				continue
			}
			if ln.End-ln.Start == 1 || len([]rune(strings.TrimSpace(lineText(ln)))) == 1 {
				continue // 单个码点本身就比预算宽
			}
			t.Fatalf("width=%g line %d %q exceeds budget: %g", width, i, lineText(ln), ln.Rect.Right())
		}
	}
}

func TestLayoutNarrowBudgetAdvancesOneCodePoint(t *testing.T) {
	l := build("abc", nil, Options{Width: 1})
	if n := len(l.Lines()); n != 3 {
		t.Fatalf("expected one code point per line, got %d lines", n)
	}
}

func TestLayoutIndents(t *testing.T) {
	st := NewStyledText("aa bb cc dd")
	st.FirstLineIndent = 12
	st.Indent = 6
	l := New(st, &stubTypesetter{}, Options{Width: 40})
	lines := l.Lines()
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0].Rect.X != 12 || lines[1].Rect.X != 6 || lines[2].Rect.X != 6 {
		t.Fatalf("unexpected indents: %g %g %g", lines[0].Rect.X, lines[1].Rect.X, lines[2].Rect.X)
	}
	if got := strings.TrimSpace(lineText(lines[1])); got != "bb cc" {
		t.Fatalf("line 2 = %q", got)
	}
}

func TestLayoutLineHeightMultiple(t *testing.T) {
	st := NewStyledText("a\nb")
	st.LineHeightMultiple = 2
	l := New(st, &stubTypesetter{}, Options{})
	lines := l.Lines()
	if !near(lines[1].Rect.Y, 24) {
		t.Fatalf("second line should start at 2*(ascent+descent)=24, got %g", lines[1].Rect.Y)
	}
	if !near(lines[0].LargestAscent, 2*12*0.8) {
		t.Fatalf("largestAscent must be weighted by the multiple, got %g", lines[0].LargestAscent)
	}
}

func TestLayoutEmptyText(t *testing.T) {
	l := build("", nil, Options{Width: 100})
	if n := len(l.Lines()); n != 1 {
		t.Fatalf("empty text must produce one empty line, got %d", n)
	}
	if m := l.Metrics(); m != (Metrics{}) {
		t.Fatalf("empty text must have zero metrics, got %+v", m)
	}
	if len(l.Commands()) != 0 || len(l.Glyphs()) != 0 {
		t.Fatalf("empty text must not produce commands or glyphs")
	}
}

func TestLayoutTrailingNewlineHasZeroHeight(t *testing.T) {
	l := build("\n", nil, Options{})
	if h := l.Metrics().Height; h != 0 {
		t.Fatalf("a lone newline must have zero height, got %g", h)
	}
	l = build("a\n\nb", nil, Options{})
	if n := len(l.Lines()); n != 3 {
		t.Fatalf("expected 3 lines, got %d", n)
	}
	if !near(l.Metrics().Height, 36) {
		t.Fatalf("blank middle line must still advance y, got height %g", l.Metrics().Height)
	}
}

func TestLayoutMissingFontDegrades(t *testing.T) {
	l := build("hello world", nil, Options{Width: 10, Defaults: Style{Family: Set("missing")}})
	if n := len(l.Lines()); n != 1 {
		t.Fatalf("zero-size font must not wrap, got %d lines", n)
	}
	if m := l.Metrics(); m.Width != 0 || m.Height != 0 {
		t.Fatalf("missing font must degrade to zero metrics, got %+v", m)
	}
}

func TestLayoutIsIdempotent(t *testing.T) {
	runs := []Run{{Start: 2, Length: 5, Style: Style{Underline: Set(UnderlineDouble), Background: Set(Color{R: 9})}}}
	a := build("a quick test\nof idempotence", runs, Options{Width: 50})
	b := build("a quick test\nof idempotence", runs, Options{Width: 50})
	ca, cb := a.Commands(), b.Commands()
	if len(ca) != len(cb) {
		t.Fatalf("command count differs: %d vs %d", len(ca), len(cb))
	}
	for i := range ca {
		if ca[i] != cb[i] {
			t.Fatalf("command %d differs: %+v vs %+v", i, ca[i], cb[i])
		}
	}
	ga, gb := a.Glyphs(), b.Glyphs()
	if len(ga) != len(gb) {
		t.Fatalf("glyph count differs")
	}
	for i := range ga {
		if ga[i] != gb[i] {
			t.Fatalf("glyph %d differs", i)
		}
	}
}

// 第一行恰好等于盒宽且紧跟显式换行时，不应多出空行。
func TestNoBlankLineWhenEqualWidthThenNewline(t *testing.T) {
	for _, text := range []string{"SAMPLE-A\nnext", "SAMPLE-A \nnext"} {
		l := build(text, nil, Options{Width: 48})
		lines := l.Lines()
		if len(lines) != 2 {
			t.Fatalf("%q: expected 2 lines, got %d", text, len(lines))
		}
		if got := strings.TrimSpace(lineText(lines[0])); got != "SAMPLE-A" {
			t.Fatalf("%q: line 1 = %q", text, got)
		}
		if !near(lines[0].Rect.Width, 48) {
			t.Fatalf("%q: line 1 width = %g", text, lines[0].Rect.Width)
		}
		if got := lineText(lines[1]); got != "next" {
			t.Fatalf("%q: line 2 = %q", text, got)
		}
	}
}

// 行首只有缩进时，放不下的单词直接按字符切分，而不是先甩出一个孤立字符。
func TestLayoutIndentedLineSplitsFirstWord(t *testing.T) {
	st := NewStyledText("aa bbbbbbbbb")
	st.Indent = 12
	lines := New(st, &stubTypesetter{}, Options{Width: 60}).Lines()
	want := []string{"aa ", "bbbbbbbb", "b"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(lines))
	}
	for i, ln := range lines {
		if got := lineText(ln); got != want[i] {
			t.Fatalf("line %d = %q, want %q", i, got, want[i])
		}
		if ln.Rect.Right() > 60 {
			t.Fatalf("line %d exceeds width: %g", i, ln.Rect.Right())
		}
	}
	if !near(lines[1].Rect.Width, 48) {
		t.Fatalf("continuation line should fill the space after the indent, got %g", lines[1].Rect.Width)
	}

	st = NewStyledText("bbbbbbbbb")
	st.FirstLineIndent = 12
	lines = New(st, &stubTypesetter{}, Options{Width: 60}).Lines()
	if len(lines) != 2 || lineText(lines[0]) != "bbbbbbbb" || lineText(lines[1]) != "b" {
		t.Fatalf("first-line indent split into %d lines, first %q", len(lines), lineText(lines[0]))
	}
}
