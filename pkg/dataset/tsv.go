package dataset

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"placeval/pkg/core"
)

// FileDataset streams a tab-separated corpus: one record per line, the
// query text before the first tab, the place name in the second field.
type FileDataset struct {
	Path     string
	NameHint string
}

func NewFileDataset(path string) *FileDataset {
	return &FileDataset{Path: path}
}

func (d *FileDataset) Name() string {
	if d.NameHint != "" {
		return d.NameHint
	}
	return filepath.Base(d.Path)
}

func (d *FileDataset) Len(ctx context.Context) (int, error) {
	file, err := os.Open(d.Path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	scanner := newLineScanner(file)
	count := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		count++
	}
	if err := scanner.Err(); err != nil {
		return 0, err
	}
	return count, nil
}

func (d *FileDataset) Samples(ctx context.Context) (<-chan core.Sample, <-chan error) {
	sampleCh := make(chan core.Sample)
	errCh := make(chan error, 1)

	go func() {
		defer close(sampleCh)
		defer close(errCh)

		file, err := os.Open(d.Path)
		if err != nil {
			errCh <- err
			return
		}
		defer file.Close()

		scanner := newLineScanner(file)
		line := 0
		for scanner.Scan() {
			line++
			sample, err := parseRecord(scanner.Text(), line)
			if err != nil {
				errCh <- err
				return
			}
			select {
			case <-ctx.Done():
				errCh <- ctx.Err()
				return
			case sampleCh <- sample:
			}
		}
		if err := scanner.Err(); err != nil {
			errCh <- err
		}
	}()

	return sampleCh, errCh
}

// parseRecord splits one corpus line. Everything before the first tab is
// the query; the second tab-delimited field is the expected place. A line
// with no tab is malformed and fatal.
func parseRecord(line string, number int) (core.Sample, error) {
	input, rest, found := strings.Cut(line, "\t")
	if !found {
		return core.Sample{}, fmt.Errorf("dataset: record %d: missing tab separator", number)
	}
	expected, _, _ := strings.Cut(rest, "\t")
	return core.Sample{
		ID:       strconv.Itoa(number),
		Input:    input,
		Expected: expected,
	}, nil
}

func newLineScanner(file *os.File) *bufio.Scanner {
	scanner := bufio.NewScanner(file)
	buf := make([]byte, 0, 1024*1024)
	scanner.Buffer(buf, 1024*1024)
	return scanner
}
