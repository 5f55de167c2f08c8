package layout

import "testing"

func TestSegmentReconstruction(t *testing.T) {
	cases := []struct {
		text string
		runs []Run
	}{
		{"", nil},
		{"plain", nil},
		{"line1\nline2", nil},
		{"a\r\nb\n\nc d", nil},
		{"trailing\n", nil},
		{"héllo wörld", []Run{{Start: 3, Length: 4}}},
		{"ab\r\ncd", []Run{{Start: 0, Length: 3}, {Start: 3, Length: 3}}},
		{"x\ny\nz", []Run{{Start: 1, Length: 3, Style: Style{Bold: Set(true)}}}},
	}
	for _, tc := range cases {
		runs := normalizeRuns(tc.text, tc.runs)
		subs := segment(tc.text, runs)
		var got string
		for _, s := range subs {
			got += tc.text[s.start:s.end()]
		}
		if got != tc.text {
			t.Fatalf("reconstruction failed for %q: got %q", tc.text, got)
		}
		for _, s := range subs {
			piece := tc.text[s.start:s.end()]
			if !s.forcedBreak && len(forcedBreaks(piece)) > 0 {
				t.Fatalf("subRun %q straddles a forced break", piece)
			}
		}
	}
}

func TestSegmentForcedBreakSubRuns(t *testing.T) {
	text := "line1\nline2"
	subs := segment(text, normalizeRuns(text, nil))
	if len(subs) != 3 {
		t.Fatalf("expected 3 subRuns, got %d", len(subs))
	}
	if !subs[1].forcedBreak || subs[1].start != 5 || subs[1].length != 1 {
		t.Fatalf("unexpected break subRun: %+v", subs[1])
	}

	crlf := "a\r\nb"
	subs = segment(crlf, normalizeRuns(crlf, []Run{{Start: 0, Length: 2}, {Start: 2, Length: 2}}))
	breaks := 0
	for _, s := range subs {
		if s.forcedBreak {
			breaks++
		}
	}
	if breaks != 1 {
		t.Fatalf("\\r\\n split across runs must stay one break, got %d", breaks)
	}
}

func TestNormalizeRunsFillsGaps(t *testing.T) {
	bold := Style{Bold: Set(true)}
	runs := normalizeRuns("abcdef", []Run{{Start: 4, Length: 10, Style: bold}, {Start: 1, Length: 2, Style: bold}})
	want := []struct{ start, length int }{{0, 1}, {1, 2}, {3, 1}, {4, 2}}
	if len(runs) != len(want) {
		t.Fatalf("expected %d runs, got %d: %+v", len(want), len(runs), runs)
	}
	for i, w := range want {
		if runs[i].Start != w.start || runs[i].Length != w.length {
			t.Fatalf("run %d: got [%d,+%d) want [%d,+%d)", i, runs[i].Start, runs[i].Length, w.start, w.length)
		}
	}
	if runs[0].Style.Bold.IsSet() || !runs[1].Style.Bold.IsSet() {
		t.Fatalf("gap runs must carry default style")
	}
}
