package markup

import (
	"strings"
	"testing"

	"github.com/ByLCY/textflow/layout"
)

func TestBuildRunsFollowTags(t *testing.T) {
	st, err := ToStyledText("a [b]bold[/b] c", nil)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if st.Text != "a bold c" {
		t.Fatalf("text = %q", st.Text)
	}
	if len(st.Runs) != 3 {
		t.Fatalf("expected 3 runs, got %+v", st.Runs)
	}
	bold := st.Runs[1]
	if bold.Start != 2 || bold.Length != 4 || !bold.Style.Bold.Or(false) {
		t.Fatalf("unexpected bold run: %+v", bold)
	}
	if st.Runs[2].Style.Bold.IsSet() {
		t.Fatalf("style must not leak past the close tag")
	}
}

func TestBuildNestedStylesMerge(t *testing.T) {
	st, err := ToStyledText("[color=red]r[size=18]big[sup]2[/sup][/size][/color]", nil)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if len(st.Runs) != 3 {
		t.Fatalf("expected 3 runs, got %+v", st.Runs)
	}
	red := layout.Color{R: 255}
	for i, r := range st.Runs {
		if fg, _ := r.Style.Foreground.Get(); fg != red {
			t.Fatalf("run %d lost the outer color: %+v", i, r.Style)
		}
	}
	if size, _ := st.Runs[1].Style.Size.Get(); size != 18 {
		t.Fatalf("size = %g", size)
	}
	sup := st.Runs[2].Style
	if !sup.Superscript.Or(false) || sup.Subscript.Or(true) {
		t.Fatalf("superscript flags wrong: %+v", sup)
	}
}

func TestBuildContextualColor(t *testing.T) {
	st, err := ToStyledText("[u=wavy color=#00f]x[/u][s=#0f0]y[/s][outline color=red width=0.3]z[/outline]", nil)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	u := st.Runs[0].Style
	if got, _ := u.Underline.Get(); got != layout.UnderlineWavy {
		t.Fatalf("underline = %v", got)
	}
	if c, _ := u.UnderlineColor.Get(); c != (layout.Color{B: 255}) || u.Foreground.IsSet() {
		t.Fatalf("color attribute must go to the underline: %+v", u)
	}
	if c, _ := st.Runs[1].Style.StrikethroughColor.Get(); c != (layout.Color{G: 255}) {
		t.Fatalf("strike color = %+v", c)
	}
	o := st.Runs[2].Style
	if c, _ := o.OutlineColor.Get(); c != (layout.Color{R: 255}) {
		t.Fatalf("outline color = %+v", c)
	}
	if w, _ := o.OutlineWidth.Get(); w != 0.3 {
		t.Fatalf("outline width = %g", w)
	}
}

func TestBuildSizeUnits(t *testing.T) {
	st, err := ToStyledText("[size=1in]x[/size]", nil)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	size, _ := st.Runs[0].Style.Size.Get()
	if d := size - 72; d > 1e-3 || d < -1e-3 {
		t.Fatalf("1in should be 72pt, got %g", size)
	}
}

func TestBuildErrors(t *testing.T) {
	cases := map[string]string{
		"[b]x[/i]":             "不匹配",
		"[blink]x[/blink]":     "未知标签",
		"[color=nope]x[/color]": "颜色",
		"[size=-2]x[/size]":    "字号",
		"[b width=2]x[/b]":     "width",
	}
	for src, want := range cases {
		_, err := ToStyledText(src, nil)
		if err == nil || !strings.Contains(err.Error(), want) {
			t.Fatalf("%q: expected error containing %q, got %v", src, want, err)
		}
	}
}

func TestBuildMergesAdjacentText(t *testing.T) {
	st, err := ToStyledText(`x\[y`, nil)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if st.Text != "x[y" || len(st.Runs) != 1 || st.Runs[0].Length != 3 {
		t.Fatalf("unexpected result: %q %+v", st.Text, st.Runs)
	}
}

func TestParseColor(t *testing.T) {
	cases := map[string]layout.Color{
		"#fff":      {R: 255, G: 255, B: 255},
		"#0F62FE":   {R: 15, G: 98, B: 254},
		"#11223344": {R: 0x11, G: 0x22, B: 0x33},
		"Orange":    {R: 255, G: 165},
	}
	for in, want := range cases {
		got, err := ParseColor(in)
		if err != nil || got != want {
			t.Fatalf("ParseColor(%q) = %+v, %v; want %+v", in, got, err, want)
		}
	}
	if _, err := ParseColor("#ggg"); err == nil {
		t.Fatalf("expected error for invalid hex")
	}
}
