package codec

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
)

const preamble = "Conway's Game Of Life"

// Encode writes grid in the board format accepted by Decode
func Encode(w io.Writer, grid model.GridView) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, preamble)
	fmt.Fprintln(bw, headerLine)
	fmt.Fprintf(bw, "%s %d\n", widthKey, grid.GetWidth())
	fmt.Fprintf(bw, "%s %d\n", heightKey, grid.GetHeight())
	fmt.Fprintln(bw)

	for row := range grid.GetHeight() {
		for col := range grid.GetWidth() {
			if col > 0 {
				bw.WriteByte(' ')
			}
			if grid.Get(row, col) {
				bw.WriteString(aliveToken)
			} else {
				bw.WriteString(deadToken)
			}
		}
		bw.WriteByte('\n')
	}
	fmt.Fprintln(bw, terminatorLine)

	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "[Encode] failed to write board")
	}
	return nil
}

// EncodeFile writes grid to path, replacing any existing file
func EncodeFile(path string, grid model.GridView) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "[EncodeFile] failed to create file: %+v", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "[EncodeFile] failed to close file: %+v", path)
		}
	}()

	return Encode(f, grid)
}

// FileSeed seeds an engine from a board file, replacing the placeholder dimensions
type FileSeed struct {
	Path string
}

// SeedGrid implements model.Seed
func (s FileSeed) SeedGrid(_, _ int) (*model.Grid, error) {
	if s.Path == "" {
		return nil, &model.ConfigError{Field: "seed_file", Msg: "empty path"}
	}
	return DecodeFile(s.Path)
}
