package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/agbru/fastmath/internal/errors"
	"github.com/agbru/fastmath/internal/selection"
	"github.com/agbru/fastmath/internal/ui"
)

func newTestApp(t *testing.T, args ...string) *Application {
	t.Helper()
	var errBuf bytes.Buffer
	a, err := New(append([]string{"fastmath", "-no-color"}, args...), &errBuf)
	if err != nil {
		t.Fatalf("New(%v): %v\nstderr: %s", args, err, errBuf.String())
	}
	t.Cleanup(func() { ui.SetCurrentTheme(ui.DarkTheme) })
	return a
}

func writeData(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNew_HelpAndErrors(t *testing.T) {
	t.Parallel()

	_, err := New([]string{"fastmath", "-h"}, &bytes.Buffer{})
	if !IsHelpError(err) {
		t.Errorf("-h should return flag.ErrHelp, got %v", err)
	}

	_, err = New([]string{"fastmath", "-mode", "select", "-random", "10"}, &bytes.Buffer{})
	if err == nil || IsHelpError(err) {
		t.Errorf("select without ranks should fail validation, got %v", err)
	}
}

func TestNew_SeedsDefaultFactory(t *testing.T) {
	a := newTestApp(t, "-mode", "select", "-random", "10", "-k", "1", "-seed", "9")
	if got, want := a.Factory.List(), selection.NewDefaultFactory(9).List(); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("factory lists %v, want %v", got, want)
	}
}

func TestRun_Tables(t *testing.T) {
	a := newTestApp(t, "-mode", "tables", "-tables", "expint")

	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code %d, output:\n%s", code, out.String())
	}
	s := out.String()
	if !strings.HasPrefix(s, "EXP_INT_TABLE_A=\n") {
		t.Errorf("stdout should start with the first table, got:\n%.200s", s)
	}
	if !strings.Contains(s, "EXP_INT_TABLE_B=") {
		t.Error("stdout should contain EXP_INT_TABLE_B")
	}
	if strings.Contains(s, "Execution Configuration") {
		t.Error("configuration banner should not be mixed with the generated source")
	}
}

func TestRun_TablesToFileWithMetrics(t *testing.T) {
	dir := t.TempDir()
	outFile := filepath.Join(dir, "tables.txt")
	metricsFile := filepath.Join(dir, "fastmath.prom")
	a := newTestApp(t, "-mode", "tables", "-tables", "expfrac", "-o", outFile, "-metrics-file", metricsFile)

	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code %d, output:\n%s", code, out.String())
	}
	if !strings.Contains(out.String(), "tables written to") {
		t.Errorf("missing confirmation, got:\n%s", out.String())
	}

	content, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "EXP_FRAC_TABLE_A=") {
		t.Error("output file should hold the generated table")
	}

	metrics, err := os.ReadFile(metricsFile)
	if err != nil {
		t.Fatalf("metrics file not written: %v", err)
	}
	if !strings.Contains(string(metrics), `fastmath_tables_generated_total{table="EXP_FRAC_TABLE_A"} 1`) {
		t.Errorf("metrics file misses the table counter:\n%s", metrics)
	}
}

// failingClose buffers writes and fails on Close, as a gzip trailer that cannot
// be flushed would.
type failingClose struct {
	bytes.Buffer
	closed bool
}

func (f *failingClose) Close() error {
	f.closed = true
	return errors.New("disk full")
}

func TestRun_TablesCloseFailure(t *testing.T) {
	a := newTestApp(t, "-mode", "tables", "-tables", "expfrac", "-o", "tables.txt.gz")
	dest := &failingClose{}
	a.openOutput = func(string) (io.WriteCloser, error) { return dest, nil }

	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitErrorGeneric {
		t.Fatalf("exit code %d, want %d, output:\n%s", code, apperrors.ExitErrorGeneric, out.String())
	}
	if !dest.closed {
		t.Error("output was never closed")
	}
	if strings.Contains(out.String(), "tables written to") {
		t.Errorf("success reported despite the failed close:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "disk full") {
		t.Errorf("close error not reported:\n%s", out.String())
	}
}

func TestRun_Select(t *testing.T) {
	path := writeData(t, "5 3 9 1 7\n2 8 6 4 0\n")
	a := newTestApp(t, "-mode", "select", "-input", path, "-k", "0,4,9", "-quiet")

	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code %d, output:\n%s", code, out.String())
	}
	if got, want := out.String(), "0\n4\n9\n"; got != want {
		t.Errorf("quiet output = %q, want %q", got, want)
	}
}

func TestRun_SelectComparison(t *testing.T) {
	outFile := filepath.Join(t.TempDir(), "answers.txt.gz")
	a := newTestApp(t, "-mode", "select", "-random", "5000", "-k", "0,2500,4999", "-o", outFile)

	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code %d, output:\n%s", code, out.String())
	}
	s := out.String()
	for _, want := range []string{"Comparison Summary", "All strategies agree", "k=2500", "Result saved to"} {
		if !strings.Contains(s, want) {
			t.Errorf("output should contain %q, got:\n%s", want, s)
		}
	}
	if _, err := os.Stat(outFile); err != nil {
		t.Errorf("result file missing: %v", err)
	}
}

func TestRun_SelectIgnoresNaN(t *testing.T) {
	// 38 distinct values in scrambled order with two NaN among them.
	var sb strings.Builder
	for i := 0; i < 38; i++ {
		fmt.Fprintf(&sb, "%d\n", (i*7)%38)
		if i == 5 || i == 30 {
			sb.WriteString("NaN\n")
		}
	}
	path := writeData(t, sb.String())

	ks := make([]string, 38)
	var want strings.Builder
	for k := range ks {
		ks[k] = fmt.Sprint(k)
		fmt.Fprintf(&want, "%d\n", k)
	}
	a := newTestApp(t, "-mode", "select", "-input", path, "-k", strings.Join(ks, ","), "-strategy", "all", "-cache-levels", "0", "-q")

	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code %d, output:\n%s", code, out.String())
	}
	if out.String() != want.String() {
		t.Errorf("quiet output = %q, want %q", out.String(), want.String())
	}
}

func TestRun_SelectNaNShrinksRankRange(t *testing.T) {
	path := writeData(t, "3 NaN 1 2\n")
	a := newTestApp(t, "-mode", "select", "-input", path, "-k", "3", "-q")

	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitErrorConfig {
		t.Errorf("exit code %d, want %d", code, apperrors.ExitErrorConfig)
	}
}

func TestRun_SelectVerbose(t *testing.T) {
	a := newTestApp(t, "-mode", "select", "-random", "100", "-k", "50", "-strategy", "central", "-v")

	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code %d, output:\n%s", code, out.String())
	}
	for _, want := range []string{"Single selection with the central pivot strategy", "Memory Stats:", "k=50"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output should contain %q, got:\n%s", want, out.String())
		}
	}
}

func TestRun_SelectRankOutOfRange(t *testing.T) {
	a := newTestApp(t, "-mode", "select", "-random", "10", "-k", "10")

	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitErrorConfig {
		t.Errorf("exit code %d, want %d", code, apperrors.ExitErrorConfig)
	}
}

func TestRun_Percentile(t *testing.T) {
	path := writeData(t, "1 2 3 4 5 NaN\n")
	a := newTestApp(t, "-mode", "percentile", "-input", path, "-p", "50,100", "-strategy", "central", "-q")

	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code %d, output:\n%s", code, out.String())
	}
	if got, want := out.String(), "3\n5\n"; got != want {
		t.Errorf("quiet output = %q, want %q", got, want)
	}
}

func TestRun_REPL(t *testing.T) {
	var errBuf bytes.Buffer
	a, err := New([]string{"fastmath", "-no-color", "-mode", "repl", "-random", "100"}, &errBuf,
		WithStdin(strings.NewReader("status\nexit\n")))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { ui.SetCurrentTheme(ui.DarkTheme) })

	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code %d", code)
	}
	if !strings.Contains(out.String(), "Strategy:       median3") {
		t.Errorf("REPL should start with median3, got:\n%s", out.String())
	}
}

func TestRun_VersionAndCompletion(t *testing.T) {
	a := newTestApp(t, "-version")
	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("version exit code %d", code)
	}
	if !strings.Contains(out.String(), "fastmath "+Version) {
		t.Errorf("version output: %s", out.String())
	}

	a = newTestApp(t, "-completion", "fish")
	out.Reset()
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("completion exit code %d", code)
	}
	if !strings.Contains(out.String(), "complete -c fastmath") {
		t.Error("fish completion expected")
	}

	a = newTestApp(t, "-completion", "tcsh")
	if code := a.Run(context.Background(), &out); code != apperrors.ExitErrorConfig {
		t.Errorf("unsupported shell exit code %d, want %d", code, apperrors.ExitErrorConfig)
	}
}

func TestRun_Canceled(t *testing.T) {
	a := newTestApp(t, "-mode", "tables")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	if code := a.Run(ctx, &out); code != apperrors.ExitErrorCanceled {
		t.Errorf("exit code %d, want %d", code, apperrors.ExitErrorCanceled)
	}
}

func TestHasVersionFlag(t *testing.T) {
	t.Parallel()

	cases := []struct {
		args []string
		want bool
	}{
		{[]string{"--version"}, true},
		{[]string{"-mode", "tables", "-version"}, true},
		{[]string{"--", "-version"}, false},
		{[]string{"-mode", "select"}, false},
	}
	for _, tc := range cases {
		if got := HasVersionFlag(tc.args); got != tc.want {
			t.Errorf("HasVersionFlag(%v) = %v, want %v", tc.args, got, tc.want)
		}
	}
}
