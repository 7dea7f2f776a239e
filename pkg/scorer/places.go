package scorer

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Places scores an ordered prediction list against a tab-separated corpus
// file: given N corpus records and N predictions in the same order, it
// returns the record count and the number of correct matches.
//
// The default comparison is case-sensitive exact match with leading and
// trailing whitespace trimmed; lowercase "london" against "London" counts
// as incorrect.
type Places struct {
	CaseSensitive       bool
	NormalizeWhitespace bool
}

// NewPlaces returns the default corpus scorer.
func NewPlaces() Places {
	return Places{CaseSensitive: true}
}

// ScoreFile reads the corpus and compares each record's place name to the
// prediction at the same position. A prediction count that does not match
// the record count is an error; so is a record with no tab separator.
func (p Places) ScoreFile(corpusPath string, predictions []string) (total, correct int, err error) {
	file, err := os.Open(corpusPath)
	if err != nil {
		return 0, 0, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	buf := make([]byte, 0, 1024*1024)
	scanner.Buffer(buf, 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		_, rest, found := strings.Cut(line, "\t")
		if !found {
			return 0, 0, fmt.Errorf("scorer: record %d: missing tab separator", total+1)
		}
		expected, _, _ := strings.Cut(rest, "\t")

		if total >= len(predictions) {
			return 0, 0, fmt.Errorf("scorer: %d predictions for a corpus with more records", len(predictions))
		}
		want := normalizeText(expected, p.CaseSensitive, p.NormalizeWhitespace)
		got := normalizeText(predictions[total], p.CaseSensitive, p.NormalizeWhitespace)
		if want == got {
			correct++
		}
		total++
	}
	if err := scanner.Err(); err != nil {
		return 0, 0, err
	}
	if total != len(predictions) {
		return 0, 0, fmt.Errorf("scorer: %d predictions for %d records", len(predictions), total)
	}
	return total, correct, nil
}
