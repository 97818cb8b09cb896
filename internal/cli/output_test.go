package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/agbru/bigcalc/internal/bigint"
	"github.com/agbru/bigcalc/internal/engine"
	"github.com/agbru/bigcalc/internal/testutil"
)

func TestWriteResultToFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "result.txt")
	req := engine.Request{Op: engine.OpFactorial, A: bigint.NewInt(20)}
	result := bigint.MustParse("2432902008176640000")

	if err := WriteResultToFile(path, req, result, "Decimal Digits", 3*time.Millisecond); err != nil {
		t.Fatalf("WriteResultToFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	for _, s := range []string{"# Engine: Decimal Digits", "# Expression: 20!", "# Digits: 19", "\n2432902008176640000\n"} {
		if !strings.Contains(content, s) {
			t.Errorf("file missing %q:\n%s", s, content)
		}
	}
}

func TestWriteResultToFile_EmptyPath(t *testing.T) {
	t.Parallel()
	if err := WriteResultToFile("", engine.Request{}, bigint.Zero(), "", 0); err != nil {
		t.Errorf("empty path should be a no-op, got %v", err)
	}
}

func TestDisplayResultWithConfig(t *testing.T) {
	t.Parallel()
	req := engine.Request{Op: engine.OpSubtract, A: bigint.NewInt(5), B: bigint.NewInt(10)}
	result := bigint.NewInt(-5)

	t.Run("quiet", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		if err := DisplayResultWithConfig(&buf, req, result, "digits", 0, OutputConfig{Quiet: true}); err != nil {
			t.Fatal(err)
		}
		if buf.String() != "-5\n" {
			t.Errorf("quiet output = %q", buf.String())
		}
	})

	t.Run("with file", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		path := filepath.Join(t.TempDir(), "r.txt")
		if err := DisplayResultWithConfig(&buf, req, result, "digits", 0, OutputConfig{OutputFile: path}); err != nil {
			t.Fatal(err)
		}
		out := testutil.StripAnsiCodes(buf.String())
		if !strings.Contains(out, "5 - 10 = -5") || !strings.Contains(out, "Result saved to: "+path) {
			t.Errorf("output = %q", out)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("result file not written: %v", err)
		}
	})
}
