package street

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
)

var update = flag.Bool("update", false, "rewrite golden files in testdata")

func TestMetrics(t *testing.T) {
	tests := []struct {
		line       string
		wantWidth  int
		wantHeight int
	}{
		{"", 0, 0},
		{"b:3,2,#", 3, 2},
		{"p:5,*", 5, 5},
		{"e:4,_X", 4, 1},
		{"b:2,1,@ p:3,+", 5, 5},
		{"b:2,9,@ p:3,+ e:2,x", 7, 9},
		{"b:2,0,#", 2, 0},
	}

	for _, tt := range tests {
		elements, err := Parse(tt.line)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", tt.line, err)
		}
		if got := TotalWidth(elements); got != tt.wantWidth {
			t.Errorf("TotalWidth(%q) = %d, want %d", tt.line, got, tt.wantWidth)
		}
		if got := MaxHeight(elements); got != tt.wantHeight {
			t.Errorf("MaxHeight(%q) = %d, want %d", tt.line, got, tt.wantHeight)
		}
	}
}

func TestSceneBuilding(t *testing.T) {
	s, err := ParseScene("b:3,2,#")
	if err != nil {
		t.Fatal(err)
	}

	want := []string{
		"+---+",
		"|   |",
		"|###|",
		"|###|",
		"+---+",
	}
	if diff := cmp.Diff(want, s.Lines()); diff != "" {
		t.Errorf("Lines() mismatch (-want +got):\n%s", diff)
	}
}

func TestScenePark(t *testing.T) {
	s, err := ParseScene("p:5,*")
	if err != nil {
		t.Fatal(err)
	}

	want := []string{
		"|     |",
		"|  *  |",
		"| *** |",
		"|*****|",
		"|  |  |",
		"|  |  |",
	}
	if diff := cmp.Diff(want, s.Rows()); diff != "" {
		t.Errorf("Rows() mismatch (-want +got):\n%s", diff)
	}
}

func TestSceneLot(t *testing.T) {
	s, err := ParseScene("e:4,_X")
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"|    |", "| X X|"}
	if diff := cmp.Diff(want, s.Rows()); diff != "" {
		t.Errorf("Rows() mismatch (-want +got):\n%s", diff)
	}
}

func TestSceneEmpty(t *testing.T) {
	s := NewScene(nil)
	want := "++\n||\n++\n"
	if got := s.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestSceneInvariants(t *testing.T) {
	lines := []string{
		"b:2,1,@ p:3,+",
		"b:3,2,# p:5,* e:4,_X",
		"p:4,^ b:1,7,| e:3,._",
		"b:5,0,# e:2,☘",
	}

	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			s, err := ParseScene(line)
			if err != nil {
				t.Fatal(err)
			}

			frame := "+" + strings.Repeat("-", s.Width()) + "+"
			all := s.Lines()
			if all[0] != frame || all[len(all)-1] != frame {
				t.Errorf("frame lines = %q / %q, want %q", all[0], all[len(all)-1], frame)
			}

			rows := s.Rows()
			if len(rows) != s.Height()+1 {
				t.Fatalf("got %d rows, want %d", len(rows), s.Height()+1)
			}
			for i, row := range rows {
				if n := utf8.RuneCountInString(row); n != s.Width()+2 {
					t.Errorf("row %d = %q has %d runes, want %d", i, row, n, s.Width()+2)
				}
				if h := s.Height() - i; row != s.Row(h) {
					t.Errorf("row %d = %q, want level %d %q", i, row, h, s.Row(h))
				}
			}
		})
	}
}

func TestSceneCombined(t *testing.T) {
	s, err := ParseScene("b:2,1,@ p:3,+")
	if err != nil {
		t.Fatal(err)
	}
	if s.Width() != 5 || s.Height() != 5 {
		t.Fatalf("Width, Height = %d, %d; want 5, 5", s.Width(), s.Height())
	}

	want := []string{
		"+-----+",
		"|     |",
		"|   + |",
		"|  +++|",
		"|  +++|",
		"|   | |",
		"|@@ | |",
		"+-----+",
	}
	if diff := cmp.Diff(want, s.Lines()); diff != "" {
		t.Errorf("Lines() mismatch (-want +got):\n%s", diff)
	}
}

func TestSceneImmutable(t *testing.T) {
	elements, err := Parse("b:3,2,#")
	if err != nil {
		t.Fatal(err)
	}
	s := NewScene(elements)
	elements[0].Height = 9

	if s.Height() != 2 {
		t.Errorf("Height() = %d after caller mutation, want 2", s.Height())
	}
	got := s.Elements()
	got[0].Width = 100
	if s.Elements()[0].Width != 3 {
		t.Error("Elements() exposes internal slice")
	}
}

func TestSceneWriteTo(t *testing.T) {
	s, err := ParseScene("b:3,2,#")
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	n, err := s.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo error: %v", err)
	}
	if int(n) != buf.Len() {
		t.Errorf("WriteTo returned %d, wrote %d bytes", n, buf.Len())
	}
	if buf.String() != s.String() {
		t.Errorf("WriteTo output %q differs from String() %q", buf.String(), s.String())
	}
}

func TestSceneGolden(t *testing.T) {
	inputs, err := filepath.Glob(filepath.Join("testdata", "*.street"))
	if err != nil {
		t.Fatal(err)
	}
	if len(inputs) == 0 {
		t.Fatal("no golden inputs in testdata")
	}

	for _, in := range inputs {
		name := strings.TrimSuffix(filepath.Base(in), ".street")
		t.Run(name, func(t *testing.T) {
			line, err := os.ReadFile(in)
			if err != nil {
				t.Fatal(err)
			}
			s, err := ParseScene(string(line))
			if err != nil {
				t.Fatalf("ParseScene error: %v", err)
			}

			golden := strings.TrimSuffix(in, ".street") + ".golden"
			if *update {
				if err := os.WriteFile(golden, []byte(s.String()), 0o644); err != nil {
					t.Fatal(err)
				}
			}
			want, err := os.ReadFile(golden)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(string(want), s.String()); diff != "" {
				t.Errorf("%s mismatch (-want +got):\n%s", golden, diff)
			}
		})
	}
}
