package layout

import "testing"

func TestAlignHorizontal(t *testing.T) {
	cases := []struct {
		align HAlign
		want  [2]float64
	}{
		{AlignLeft, [2]float64{0, 0}},
		{AlignCenter, [2]float64{44, 38}},
		{AlignRight, [2]float64{88, 76}},
	}
	for _, c := range cases {
		l := build("ab\nabcd", nil, Options{Width: 100, HAlign: c.align})
		lines := l.Lines()
		for i, ln := range lines {
			if !near(ln.Rect.X, c.want[i]) {
				t.Fatalf("align %d line %d x = %g, want %g", c.align, i, ln.Rect.X, c.want[i])
			}
			if !near(ln.Runs[0].X, c.want[i]) {
				t.Fatalf("runs must move with their line: %g", ln.Runs[0].X)
			}
		}
	}
}

func TestAlignVertical(t *testing.T) {
	l := build("ab\nabcd", nil, Options{Height: 100, VAlign: AlignBottom})
	if lines := l.Lines(); !near(lines[1].Rect.Bottom(), 100) || !near(lines[0].Rect.Y, 76) {
		t.Fatalf("bottom aligned lines = %+v", lines)
	}
	l = build("ab\nabcd", nil, Options{Height: 100, VAlign: AlignMiddle})
	if lines := l.Lines(); !near(lines[0].Rect.Y, 38) {
		t.Fatalf("middle aligned y = %g", lines[0].Rect.Y)
	}
}

// 行高倍数放大的首行上方空白不计入居中。
func TestAlignMiddleCompensatesLineHeight(t *testing.T) {
	st := NewStyledText("a\nb")
	st.LineHeightMultiple = 2
	l := New(st, &stubTypesetter{}, Options{Height: 100, VAlign: AlignMiddle})
	lines := l.Lines()
	first := lines[0]
	inkTop := first.Rect.Y + first.LargestAscent - first.LargestAscent/2
	inkBottom := lines[1].Rect.Bottom()
	if !near(inkTop, 100-inkBottom) {
		t.Fatalf("ink block not centered: top gap %g, bottom gap %g", inkTop, 100-inkBottom)
	}
}

func TestAlignWithoutBoxIsNoop(t *testing.T) {
	l := build("ab\nabcd", nil, Options{HAlign: AlignRight, VAlign: AlignBottom})
	lines := l.Lines()
	if !near(lines[0].Rect.X, 12) || !near(lines[1].Rect.X, 0) || lines[0].Rect.Y != 0 {
		t.Fatalf("unexpected positions: %+v / %+v", lines[0].Rect, lines[1].Rect)
	}
}

func TestAlignBottomWithLineHeightKeepsInkOnEdge(t *testing.T) {
	st := NewStyledText("a\nb")
	st.LineHeightMultiple = 2
	l := New(st, &stubTypesetter{}, Options{Height: 100, VAlign: AlignBottom})
	if bottom := l.Lines()[1].Rect.Bottom(); !near(bottom, 100) {
		t.Fatalf("last line bottom = %g, want 100", bottom)
	}
}

// 对齐只移动位置，Metrics 始终是文本块自身的尺寸。
func TestMetricsIgnoreAlignment(t *testing.T) {
	l := build("", nil, Options{Width: 100, HAlign: AlignCenter})
	if m := l.Metrics(); m != (Metrics{}) {
		t.Fatalf("centred empty text must have zero metrics, got %+v", m)
	}
	st := NewStyledText("")
	st.FirstLineIndent = 10
	if m := New(st, &stubTypesetter{}, Options{}).Metrics(); m != (Metrics{}) {
		t.Fatalf("indented empty text must have zero metrics, got %+v", m)
	}

	l = build("ab", nil, Options{Width: 100, Height: 80, HAlign: AlignRight, VAlign: AlignBottom})
	want := Metrics{Width: 12, Height: 12, AdvanceX: 12, AdvanceY: 12}
	if m := l.Metrics(); !near(m.Width, want.Width) || !near(m.Height, want.Height) ||
		!near(m.AdvanceX, want.AdvanceX) || !near(m.AdvanceY, want.AdvanceY) {
		t.Fatalf("aligned metrics = %+v, want %+v", m, want)
	}
	b := l.Bounds()
	if !near(b.X, 88) || !near(b.Y, 68) || !near(b.Right(), 100) || !near(b.Bottom(), 80) {
		t.Fatalf("bounds must follow the aligned lines, got %+v", b)
	}

	st = NewStyledText("ab")
	st.FirstLineIndent = 10
	if w := New(st, &stubTypesetter{}, Options{}).Metrics().Width; !near(w, 22) {
		t.Fatalf("indent of a non-empty line belongs to the block, width = %g", w)
	}
}

func TestBoundsOfEmptyText(t *testing.T) {
	if b := build("\n\n", nil, Options{Width: 100, HAlign: AlignCenter}).Bounds(); b != (Rect{}) {
		t.Fatalf("blank lines must not contribute to bounds, got %+v", b)
	}
}
