// Package codec reads and writes the plain-text board format used to seed a run:
//
//	<any preamble lines>
//	BOARD GRID
//	WIDTH <n>
//	HEIGHT <n>
//	<separator line>
//	<HEIGHT rows of WIDTH space-separated 0/1 tokens>
//	====================
package codec

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
)

const (
	headerLine     = "BOARD GRID"
	widthKey       = "WIDTH"
	heightKey      = "HEIGHT"
	terminatorLine = "===================="

	// rows are two bytes per cell
	maxLineSize = 16 << 20
	// largest board a file may declare
	maxCells = 1 << 26

	aliveToken = "1"
	deadToken  = "0"
)

// ParseError reports malformed board content. Line is 1-based; 0 means end of input.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return "parse board: " + e.Msg
	}
	return fmt.Sprintf("parse board: line %d: %s", e.Line, e.Msg)
}

type lineReader struct {
	scanner *bufio.Scanner
	line    int
}

func (l *lineReader) next() (string, bool) {
	if !l.scanner.Scan() {
		return "", false
	}
	l.line++
	return strings.TrimRight(l.scanner.Text(), " \t\r"), true
}

// Decode parses a board. Rows must carry exactly WIDTH tokens; nothing is returned
// unless the whole board parsed.
func Decode(r io.Reader) (*model.Grid, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lr := &lineReader{scanner: scanner}

	found := false
	for !found {
		text, ok := lr.next()
		if !ok {
			if err := lr.scanner.Err(); err != nil {
				return nil, errors.Wrap(err, "[Decode] failed to read board")
			}
			return nil, &ParseError{Msg: fmt.Sprintf("missing %q header", headerLine)}
		}
		found = text == headerLine
	}

	width, err := lr.dimension(widthKey)
	if err != nil {
		return nil, err
	}
	height, err := lr.dimension(heightKey)
	if err != nil {
		return nil, err
	}
	if height > maxCells/width {
		return nil, &ParseError{Line: lr.line, Msg: fmt.Sprintf("%dx%d board exceeds %d cells", width, height, maxCells)}
	}

	if _, ok := lr.next(); !ok {
		return nil, lr.eof(fmt.Sprintf("expected separator line and %d rows", height))
	}

	// rows are only kept once parsed, so the declared size is never allocated up front
	rows := make([][]bool, 0, min(height, 1024))
	for row := range height {
		text, ok := lr.next()
		if !ok {
			return nil, lr.eof(fmt.Sprintf("expected %d rows, got %d", height, row))
		}
		if text == terminatorLine {
			return nil, &ParseError{Line: lr.line, Msg: fmt.Sprintf("terminator after %d of %d rows", row, height)}
		}

		tokens := strings.Fields(text)
		if len(tokens) != width {
			return nil, &ParseError{Line: lr.line, Msg: fmt.Sprintf("row has %d cells, expected %d", len(tokens), width)}
		}
		cells := make([]bool, width)
		for col, token := range tokens {
			switch token {
			case aliveToken:
				cells[col] = true
			case deadToken:
			default:
				return nil, &ParseError{Line: lr.line, Msg: fmt.Sprintf("invalid cell %q", token)}
			}
		}
		rows = append(rows, cells)
	}

	return model.GridFromRows(rows)
}

// DecodeFile opens and decodes the board at path
func DecodeFile(path string) (*model.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "[DecodeFile] failed to open file: %+v", path)
	}
	defer f.Close()

	grid, err := Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "[DecodeFile] failed to decode file: %+v", path)
	}
	return grid, nil
}

func (l *lineReader) dimension(key string) (int, error) {
	text, ok := l.next()
	if !ok {
		return 0, l.eof(fmt.Sprintf("expected %s line", key))
	}

	fields := strings.Fields(text)
	if len(fields) != 2 || fields[0] != key {
		return 0, &ParseError{Line: l.line, Msg: fmt.Sprintf("expected %q, got %q", key+" <n>", text)}
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, &ParseError{Line: l.line, Msg: fmt.Sprintf("%s is not an integer: %q", key, fields[1])}
	}
	if n <= 0 {
		return 0, &ParseError{Line: l.line, Msg: fmt.Sprintf("%s must be positive, got %d", key, n)}
	}
	return n, nil
}

func (l *lineReader) eof(msg string) error {
	if err := l.scanner.Err(); err != nil {
		return errors.Wrap(err, "[Decode] failed to read board")
	}
	return &ParseError{Msg: "unexpected end of input: " + msg}
}
