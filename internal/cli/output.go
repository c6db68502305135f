// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayResult], [DisplayQuietResult], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatValue].
//
//   - Write*, Create* and Load* functions work on files.
//     Examples: [WriteSelectionResultToFile], [CreateOutputFile], [LoadData].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/agbru/fastmath/internal/orchestration"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// Quiet mode suppresses everything but the answers.
	Quiet bool
	// Verbose shows every answer.
	Verbose bool
}

// gzipFile closes the compressor before the file.
type gzipFile struct {
	*gzip.Writer
	f *os.File
}

func (g gzipFile) Close() error {
	if err := g.Writer.Close(); err != nil {
		g.f.Close()
		return err
	}
	return g.f.Close()
}

// CreateOutputFile creates path, and its directory when missing. A ".gz"
// suffix returns a writer that gzip-compresses. The caller must Close the
// writer; its error reports a failed flush.
func CreateOutputFile(path string) (io.WriteCloser, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	if strings.HasSuffix(path, ".gz") {
		return gzipFile{Writer: gzip.NewWriter(f), f: f}, nil
	}
	return f, nil
}

// WriteSelectionResultToFile writes the answers of a selection run, one
// "k value" line per rank after a commented header.
//
// Parameters:
//   - result: The result to save.
//   - ks: The ranks, in the order of result.Values.
//   - n: The size of the data set.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteSelectionResultToFile(result orchestration.SelectionResult, ks []int, n int, config OutputConfig) (err error) {
	if config.OutputFile == "" {
		return nil
	}

	w, err := CreateOutputFile(config.OutputFile)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}()

	fmt.Fprintf(w, "# Rank selection result\n")
	fmt.Fprintf(w, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(w, "# Strategy: %s\n", result.Name)
	fmt.Fprintf(w, "# Duration: %s\n", result.Duration)
	fmt.Fprintf(w, "# Values: %d\n", n)
	fmt.Fprintf(w, "\n")
	for i, v := range result.Values {
		if _, err = fmt.Fprintf(w, "%d %s\n", ks[i], FormatValue(v)); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
	}
	return nil
}

// WritePercentilesToFile writes "p value" lines after a commented header.
func WritePercentilesToFile(ps, values []float64, estimation string, n int, config OutputConfig) (err error) {
	if config.OutputFile == "" {
		return nil
	}

	w, err := CreateOutputFile(config.OutputFile)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}()

	fmt.Fprintf(w, "# Percentile estimates\n")
	fmt.Fprintf(w, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(w, "# Estimation: %s\n", estimation)
	fmt.Fprintf(w, "# Values: %d\n", n)
	fmt.Fprintf(w, "\n")
	for i, v := range values {
		if _, err = fmt.Fprintf(w, "%s %s\n", FormatValue(ps[i]), FormatValue(v)); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
	}
	return nil
}
