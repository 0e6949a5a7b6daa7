package codec

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
)

const gliderBoard = `Glider, saved by hand
author: nobody

BOARD GRID
WIDTH 5
HEIGHT 4

0 1 0 0 0
0 0 1 0 0
1 1 1 0 0
0 0 0 0 0
====================
`

func TestDecode(t *testing.T) {
	g, err := Decode(strings.NewReader(gliderBoard))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if g.GetWidth() != 5 || g.GetHeight() != 4 {
		t.Fatalf("dimensions = %dx%d, expected 5x4", g.GetWidth(), g.GetHeight())
	}

	want := ".#...\n..#..\n###..\n.....\n"
	if got := g.String(); got != want {
		t.Fatalf("decoded\n%s\nexpected\n%s", got, want)
	}
}

func TestDecodeToleratesLineEndings(t *testing.T) {
	board := strings.ReplaceAll(gliderBoard, "\n", "\r\n")
	board = strings.Replace(board, "BOARD GRID", "BOARD GRID  ", 1)
	board = strings.Replace(board, "WIDTH 5", "WIDTH  5", 1)

	g, err := Decode(strings.NewReader(board))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if n := g.CountLivingCells(); n != 5 {
		t.Fatalf("living cells = %d, expected 5", n)
	}
}

func TestDecodeWithoutTerminator(t *testing.T) {
	board := "BOARD GRID\nWIDTH 2\nHEIGHT 2\n\n1 0\n0 1"
	g, err := Decode(strings.NewReader(board))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !g.Get(0, 0) || !g.Get(1, 1) || g.Get(0, 1) || g.Get(1, 0) {
		t.Fatalf("decoded\n%s", g)
	}
}

func TestDecodeIgnoresTrailingLines(t *testing.T) {
	board := gliderBoard + "notes after the board\n1 1 1\n"
	if _, err := Decode(strings.NewReader(board)); err != nil {
		t.Fatalf("Decode: %v", err)
	}
}

func TestDecodeErrors(t *testing.T) {
	cases := map[string]string{
		"missing header":        "WIDTH 2\nHEIGHT 2\n\n1 0\n0 1\n",
		"empty input":           "",
		"header not exact":      "BOARD GRID v2\nWIDTH 2\nHEIGHT 2\n\n1 0\n0 1\n",
		"missing width":         "BOARD GRID\n",
		"width not a number":    "BOARD GRID\nWIDTH two\nHEIGHT 2\n\n1 0\n0 1\n",
		"width zero":            "BOARD GRID\nWIDTH 0\nHEIGHT 2\n\n\n\n",
		"height negative":       "BOARD GRID\nWIDTH 2\nHEIGHT -2\n\n1 0\n0 1\n",
		"height key misspelled": "BOARD GRID\nWIDTH 2\nHIGHT 2\n\n1 0\n0 1\n",
		"width without value":   "BOARD GRID\nWIDTH\nHEIGHT 2\n\n1 0\n0 1\n",
		"dimensions swapped":    "BOARD GRID\nHEIGHT 2\nWIDTH 2\n\n1 0\n0 1\n",
		"missing separator":     "BOARD GRID\nWIDTH 2\nHEIGHT 2",
		"bad token":             "BOARD GRID\nWIDTH 2\nHEIGHT 2\n\n1 0\n0 2\n",
		"word token":            "BOARD GRID\nWIDTH 2\nHEIGHT 2\n\n1 x\n0 1\n",
		"short row":             "BOARD GRID\nWIDTH 3\nHEIGHT 2\n\n1 0 1\n0 1\n",
		"long row":              "BOARD GRID\nWIDTH 2\nHEIGHT 2\n\n1 0 1\n0 1\n",
		"empty row":             "BOARD GRID\nWIDTH 2\nHEIGHT 2\n\n\n0 1\n",
		"too few rows":          "BOARD GRID\nWIDTH 2\nHEIGHT 3\n\n1 0\n0 1\n",
		"early terminator":      "BOARD GRID\nWIDTH 2\nHEIGHT 3\n\n1 0\n0 1\n====================\n",
		"huge declared height":  "BOARD GRID\nWIDTH 1\nHEIGHT 1099511627776\n\n1\n",
		"huge declared width":   "BOARD GRID\nWIDTH 1099511627776\nHEIGHT 1\n\n1\n",
		"huge declared area":    "BOARD GRID\nWIDTH 65536\nHEIGHT 65536\n\n1\n",
	}
	for name, board := range cases {
		t.Run(name, func(t *testing.T) {
			g, err := Decode(strings.NewReader(board))
			if g != nil {
				t.Fatalf("partial grid returned:\n%s", g)
			}
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("err = %v, expected *ParseError", err)
			}
		})
	}
}

func TestParseErrorLine(t *testing.T) {
	_, err := Decode(strings.NewReader("intro\nBOARD GRID\nWIDTH 2\nHEIGHT 2\n\n1 0\n0 7\n"))
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("err = %v, expected *ParseError", err)
	}
	if parseErr.Line != 7 {
		t.Fatalf("Line = %d, expected 7", parseErr.Line)
	}
	if !strings.Contains(parseErr.Error(), "line 7") {
		t.Fatalf("message %q does not name the line", parseErr.Error())
	}
}

func TestDecodeTallBoardWithinLimit(t *testing.T) {
	// declared size is checked against the limit, and rows are read as they come
	var b strings.Builder
	b.WriteString("BOARD GRID\nWIDTH 1\nHEIGHT 5000\n\n")
	for row := range 5000 {
		if row%2 == 0 {
			b.WriteString("1\n")
		} else {
			b.WriteString("0\n")
		}
	}
	g, err := Decode(strings.NewReader(b.String()))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if g.GetHeight() != 5000 || g.CountLivingCells() != 2500 {
		t.Fatalf("decoded %dx%d with %d live cells, expected 1x5000 with 2500", g.GetWidth(), g.GetHeight(), g.CountLivingCells())
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	rng := model.NewRand(11)
	for width := 1; width <= 7; width++ {
		for height := 1; height <= 7; height++ {
			want, err := model.RandomSeed{PercentAlive: 50, Rand: rng}.SeedGrid(width, height)
			if err != nil {
				t.Fatalf("SeedGrid: %v", err)
			}

			var buf bytes.Buffer
			if err := Encode(&buf, want); err != nil {
				t.Fatalf("Encode: %v", err)
			}
			got, err := Decode(&buf)
			if err != nil {
				t.Fatalf("%dx%d: Decode: %v", width, height, err)
			}
			if !got.Equal(want) {
				t.Fatalf("%dx%d: round trip got\n%s\nexpected\n%s", width, height, got, want)
			}
		}
	}
}

func TestEncodeFormat(t *testing.T) {
	g := model.NewGrid(3, 2)
	g.Set(0, 0, true)
	g.Set(1, 2, true)

	var buf bytes.Buffer
	if err := Encode(&buf, g); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := preamble + "\nBOARD GRID\nWIDTH 3\nHEIGHT 2\n\n1 0 0\n0 0 1\n====================\n"
	if got := buf.String(); got != want {
		t.Fatalf("Encode wrote\n%q\nexpected\n%q", got, want)
	}
}

func TestFileRoundTripAndSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.txt")
	if err := os.WriteFile(path, []byte(gliderBoard), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	// the file replaces the placeholder dimensions
	e, err := model.NewSetup(800, 400).Finalize(FileSeed{Path: path})
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if e.GetWidth() != 5 || e.GetHeight() != 4 {
		t.Fatalf("dimensions = %dx%d, expected 5x4", e.GetWidth(), e.GetHeight())
	}

	out := filepath.Join(t.TempDir(), "copy.txt")
	if err := EncodeFile(out, e.Current()); err != nil {
		t.Fatalf("EncodeFile: %v", err)
	}
	g, err := DecodeFile(out)
	if err != nil {
		t.Fatalf("DecodeFile: %v", err)
	}
	if !g.Equal(e.Snapshot()) {
		t.Fatalf("file round trip got\n%s\nexpected\n%s", g, e.Snapshot())
	}
}

func TestFileSeedErrors(t *testing.T) {
	var cfgErr *model.ConfigError
	if _, err := model.NewSetup(4, 4).Finalize(FileSeed{}); !errors.As(err, &cfgErr) {
		t.Fatalf("empty path: err = %v, expected *model.ConfigError", err)
	}

	missing := filepath.Join(t.TempDir(), "missing.txt")
	_, err := model.NewSetup(4, 4).Finalize(FileSeed{Path: missing})
	if !os.IsNotExist(errors.Cause(err)) {
		t.Fatalf("missing file: err = %v, expected a not-exist cause", err)
	}

	bad := filepath.Join(t.TempDir(), "bad.txt")
	if err := os.WriteFile(bad, []byte("no board here\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	e, err := model.NewSetup(4, 4).Finalize(FileSeed{Path: bad})
	var parseErr *ParseError
	if e != nil || !errors.As(err, &parseErr) {
		t.Fatalf("malformed file: %v, %v; expected *ParseError and no engine", e, err)
	}
}
