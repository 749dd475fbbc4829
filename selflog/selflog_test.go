package selflog

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestPrintf(t *testing.T) {
	Disable()
	defer Disable()

	t.Run("disabled writes nothing", func(t *testing.T) {
		var buf bytes.Buffer
		Printf("[test] hidden")
		if buf.Len() != 0 || IsEnabled() {
			t.Error("expected selflog to be disabled")
		}
	})

	t.Run("writer", func(t *testing.T) {
		var buf bytes.Buffer
		Enable(&buf)
		defer Disable()

		Printf("[render] value of type %s is not serializable", "chan int")
		if !strings.Contains(buf.String(), "[render] value of type chan int is not serializable") {
			t.Errorf("unexpected output: %q", buf.String())
		}
		if !strings.HasSuffix(buf.String(), "\n") {
			t.Error("expected trailing newline")
		}
	})

	t.Run("func", func(t *testing.T) {
		var lines []string
		EnableFunc(func(line string) { lines = append(lines, line) })
		defer Disable()

		Printf("[sink] write failed: %v", "disk full")
		if len(lines) != 1 || !strings.Contains(lines[0], "disk full") {
			t.Errorf("unexpected lines: %v", lines)
		}
	})

	t.Run("nil arguments are ignored", func(t *testing.T) {
		Enable(nil)
		EnableFunc(nil)
		if IsEnabled() {
			t.Error("nil writer or func must not enable selflog")
		}
	})
}

func TestSyncConcurrentWrites(t *testing.T) {
	var buf bytes.Buffer
	Enable(Sync(&buf))
	defer Disable()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			Printf("[worker-%d] done", n)
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 50 {
		t.Errorf("expected 50 lines, got %d", len(lines))
	}
}

func TestEnableFromEnvFile(t *testing.T) {
	defer Disable()

	path := filepath.Join(t.TempDir(), "selflog.txt")
	enableFromEnv(path)
	Printf("[env] to file")
	Disable()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read selflog file: %v", err)
	}
	if !strings.Contains(string(data), "[env] to file") {
		t.Errorf("file content = %q", data)
	}
}
