package buffer

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// ErrNoFilename is returned by Save when neither an explicit path nor the
// buffer's own filename is available.
var ErrNoFilename = errors.New("no file name")

// LoadResult describes a completed load.
type LoadResult struct {
	Path    string
	Rows    int
	NewFile bool
}

// SaveResult describes a completed save.
type SaveResult struct {
	Path  string
	Lines int
	Bytes int
}

// Load replaces the buffer content with the file at path. A missing file is
// not an error: the buffer becomes empty and the result reports NewFile.
// On any other failure the current content is left untouched.
func (b *Buffer) Load(path string) (LoadResult, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		b.replace(nil)
		b.filename = path
		return LoadResult{Path: path, NewFile: true}, nil
	}
	if err != nil {
		return LoadResult{}, err
	}
	defer f.Close()

	lines, err := readLines(f)
	if err != nil {
		return LoadResult{}, fmt.Errorf("read %s: %w", path, err)
	}

	b.replace(lines)
	b.filename = path
	return LoadResult{Path: path, Rows: len(lines)}, nil
}

// readLines splits r into lines, stripping any trailing "\n" and "\r".
func readLines(r io.Reader) ([][]byte, error) {
	var lines [][]byte
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadBytes('\n')
		if len(line) > 0 {
			lines = append(lines, bytes.TrimRight(line, "\r\n"))
		}
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// Save writes the buffer to path, or to the buffer's filename when path is
// empty. The dirty flag is cleared only when every byte has been written and
// synced. A successful save to an explicit path adopts it as the filename
// when the buffer had none.
func (b *Buffer) Save(path string) (SaveResult, error) {
	if path == "" {
		path = b.filename
	}
	if path == "" {
		return SaveResult{}, ErrNoFilename
	}

	data := b.Serialize()
	if err := writeFile(path, data); err != nil {
		return SaveResult{}, err
	}

	if b.filename == "" {
		b.filename = path
	}
	b.dirty = false
	return SaveResult{Path: path, Lines: len(b.rows), Bytes: len(data)}, nil
}

func writeFile(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}

	n, err := f.Write(data)
	if err == nil && n != len(data) {
		err = io.ErrShortWrite
	}
	if err == nil {
		err = f.Sync()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
