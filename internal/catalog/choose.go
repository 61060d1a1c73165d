package catalog

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Choose prints a numbered list of names to out and reads a 1-based choice
// from in.
func Choose(names []string, in io.Reader, out io.Writer) (string, error) {
	if len(names) == 0 {
		return "", ErrNoDatasets
	}

	_, _ = fmt.Fprintln(out, "Available datasets:")
	for i, name := range names {
		_, _ = fmt.Fprintf(out, "  %d. %s\n", i+1, name)
	}
	_, _ = fmt.Fprint(out, "\nEnter the number of the dataset to use: ")

	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidChoice, err)
		}
		return "", fmt.Errorf("%w: no answer", ErrInvalidChoice)
	}

	answer := strings.TrimSpace(scanner.Text())
	choice, err := strconv.Atoi(answer)
	if err != nil {
		return "", fmt.Errorf("%w: %q is not a number", ErrInvalidChoice, answer)
	}
	if choice < 1 || choice > len(names) {
		return "", fmt.Errorf("%w: %d is not between 1 and %d", ErrInvalidChoice, choice, len(names))
	}
	return names[choice-1], nil
}
