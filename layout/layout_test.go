package layout_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/ByLCY/textflow/layout"
	"github.com/ByLCY/textflow/renderer/cells"
)

func TestLayoutConcurrentReaders(t *testing.T) {
	ts := cells.NewTypesetter(false)
	st := layout.NewStyledText(strings.Repeat("lorem ipsum dolor sit amet ", 20))
	l := layout.New(st, ts, layout.Options{Width: 24})

	var wg sync.WaitGroup
	glyphs := make([]int, 8)
	heights := make([]float64, 8)
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			glyphs[i] = len(l.Glyphs())
			heights[i] = l.Metrics().Height
		}()
	}
	wg.Wait()
	for i := range glyphs {
		if glyphs[i] != len(st.Text) || heights[i] != heights[0] {
			t.Fatalf("reader %d saw %d glyphs, height %g", i, glyphs[i], heights[i])
		}
	}
	if heights[0] != float64(len(l.Lines())) {
		t.Fatalf("each cell line is one unit tall: %g vs %d lines", heights[0], len(l.Lines()))
	}
}

// 多个布局可以并发构建并共享同一个排版后端。
func TestLayoutsBuildConcurrently(t *testing.T) {
	ts := cells.NewTypesetter(false)
	texts := []string{"alpha beta", "漢字かなカナ", "one\ntwo\nthree", ""}
	var wg sync.WaitGroup
	results := make([]*layout.Layout, len(texts))
	for i, text := range texts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = layout.New(layout.NewStyledText(text), ts, layout.Options{Width: 6})
		}()
	}
	wg.Wait()
	for i, l := range results {
		if l.Text() != texts[i] {
			t.Fatalf("layout %d text = %q", i, l.Text())
		}
		for _, ln := range l.Lines() {
			if ln.Rect.Width > 6 {
				t.Fatalf("layout %d line exceeds width: %+v", i, ln.Rect)
			}
		}
	}
}

func TestDebugJSON(t *testing.T) {
	st := layout.NewStyledText("hi there")
	st.AddRun(0, 2, layout.Style{Bold: layout.Set(true)})
	l := layout.New(st, cells.NewTypesetter(false), layout.Options{Width: 5})

	path := filepath.Join(t.TempDir(), "layout.json")
	if err := layout.WriteDebugJSON(l, path, true); err != nil {
		t.Fatalf("write debug json: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var dump struct {
		Text     string            `json:"text"`
		Lines    []json.RawMessage `json:"lines"`
		Commands []struct {
			Op   string `json:"op"`
			Text string `json:"text"`
		} `json:"commands"`
		Glyphs []json.RawMessage `json:"glyphs"`
	}
	if err := json.Unmarshal(data, &dump); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dump.Text != "hi there" || len(dump.Lines) != 2 || len(dump.Glyphs) != len("hi there") {
		t.Fatalf("unexpected dump: %s", data)
	}
	var texts []string
	for _, c := range dump.Commands {
		if c.Op == "drawText" {
			texts = append(texts, c.Text)
		}
	}
	if strings.Join(texts, "|") != "hi|there" {
		t.Fatalf("draw texts = %v", texts)
	}
}
