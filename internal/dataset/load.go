package dataset

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Load reads a dataset from a text file holding one "x label" pair per
// line, separated by whitespace or a comma. Blank lines and #-comments are
// skipped.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open dataset")
	}
	defer f.Close()

	var samples []Sample
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(strings.ReplaceAll(line, ",", " "))
		if len(fields) != 2 {
			return nil, errors.Errorf("line %d: want \"x label\", got %q", lineNo, line)
		}
		x, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d: input", lineNo)
		}
		label, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, errors.Wrapf(err, "line %d: label", lineNo)
		}
		samples = append(samples, Sample{X: x, Label: label})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read dataset")
	}
	return New(samples)
}
