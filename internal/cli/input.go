package cli

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// ReadData parses numbers separated by spaces, tabs, commas, semicolons or
// new lines. Lines starting with '#' are comments. "NaN" and "Inf" are
// accepted.
func ReadData(r io.Reader) ([]float64, error) {
	var data []float64
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.FieldsFunc(text, func(r rune) bool {
			return r == ' ' || r == '\t' || r == ',' || r == ';'
		})
		for _, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %q is not a number", line, field)
			}
			data = append(data, v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read data: %w", err)
	}
	return data, nil
}

// LoadData reads the data set at path. "-" reads stdin; a ".gz" suffix is
// decompressed.
func LoadData(path string, stdin io.Reader) ([]float64, error) {
	if path == "-" {
		return ReadData(stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("failed to open compressed input: %w", err)
		}
		defer zr.Close()
		r = zr
	}
	return ReadData(r)
}

// DropNaN removes the NaN entries of values in place and returns the shortened
// slice with the number of entries removed. Selection partitions with ordered
// comparisons, which NaN does not take part in.
func DropNaN(values []float64) ([]float64, int) {
	kept := values[:0]
	for _, v := range values {
		if !math.IsNaN(v) {
			kept = append(kept, v)
		}
	}
	return kept, len(values) - len(kept)
}

// RandomData returns n values uniform in [0, 1), reproducible from seed.
func RandomData(n int, seed uint64) []float64 {
	rng := rand.New(rand.NewPCG(seed, ^seed))
	data := make([]float64, n)
	for i := range data {
		data[i] = rng.Float64()
	}
	return data
}
