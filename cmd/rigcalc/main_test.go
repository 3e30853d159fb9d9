package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aemckenna/rig-calc/internal/catalog"
	"github.com/aemckenna/rig-calc/internal/session"
)

// writeTestConfig writes a config using a temp database and the given port.
func writeTestConfig(t *testing.T, dir string, port int) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	content := fmt.Sprintf(`
database:
  path: %q
  wal_mode: true
  busy_timeout: 5
api:
  host: "127.0.0.1"
  port: %d
logging:
  level: error
  format: text
  output: stderr
rig:
  supply_voltage: 120
`, filepath.Join(dir, "rig.db"), port)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

func freePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	return ln.Addr().(*net.TCPAddr).Port
}

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRunServe_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("invalid: [yaml"), 0600); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := runServe(ctx, path, serveOptions{}); err == nil {
		t.Fatal("runServe() should fail with invalid config")
	}
}

func TestRunServe_ValidationFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("rig:\n  supply_voltage: -1\n"), 0600); err != nil {
		t.Fatal(err)
	}

	err := runServe(context.Background(), path, serveOptions{})
	if err == nil || !strings.Contains(err.Error(), "rig.supply_voltage") {
		t.Fatalf("runServe() error = %v, want supply voltage validation error", err)
	}
}

func TestRunServe_MissingCatalogFile(t *testing.T) {
	dir := t.TempDir()
	path := writeTestConfig(t, dir, freePort(t))
	t.Setenv("RIGCALC_CATALOG_FILE", filepath.Join(dir, "absent.yaml"))

	if err := runServe(context.Background(), path, serveOptions{}); err == nil {
		t.Fatal("runServe() with missing catalog file: error = nil")
	}
}

func TestServeThenReport(t *testing.T) {
	dir := t.TempDir()
	port := freePort(t)
	path := writeTestConfig(t, dir, port)
	base := fmt.Sprintf("http://127.0.0.1:%d/api/v1", port)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runServe(ctx, path, serveOptions{}) }()

	deadline := time.Now().Add(5 * time.Second)
	for {
		resp, err := http.Get(base + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				break
			}
		}
		if time.Now().After(deadline) {
			cancel()
			t.Fatalf("server did not become healthy: %v", err)
		}
		time.Sleep(50 * time.Millisecond)
	}

	resp, err := http.Post(base+"/rig/demo", "application/json", nil)
	if err != nil {
		cancel()
		t.Fatalf("load demo: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("load demo status = %d, want 200", resp.StatusCode)
	}

	resp, err = http.Get(base + "/rig/history")
	if err != nil {
		cancel()
		t.Fatalf("history: %v", err)
	}
	var page struct {
		Total   int `json:"total"`
		Entries []struct {
			Reason string `json:"reason"`
		} `json:"entries"`
	}
	err = json.NewDecoder(resp.Body).Decode(&page)
	resp.Body.Close()
	if err != nil {
		t.Errorf("history body: %v", err)
	} else if page.Total != 1 || page.Entries[0].Reason != session.ReasonDemoLoaded {
		t.Errorf("history = %+v, want one demo_loaded entry", page)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("runServe() error = %v", err)
		}
	case <-time.After(15 * time.Second):
		t.Fatal("runServe() did not return after cancel")
	}

	// The rig persisted by serve is visible to report.
	out, err := execute(t, "report", "--config", path)
	if err != nil {
		t.Fatalf("report error = %v", err)
	}
	for _, want := range []string{"Rig: 5 lines, 25 fixtures", "Stage Right", "over limit"} {
		if !strings.Contains(out, want) {
			t.Errorf("report output missing %q:\n%s", want, out)
		}
	}

	out, err = execute(t, "report", "--config", path, "--universe", "2")
	if err != nil {
		t.Fatalf("report --universe error = %v", err)
	}
	if !strings.Contains(out, "Universe 2: 429 channels occupied, 0 overlapping") {
		t.Errorf("grid output missing universe 2 header:\n%s", out)
	}

	out, err = execute(t, "report", "--config", path, "--json")
	if err != nil {
		t.Fatalf("report --json error = %v", err)
	}
	var summary session.Summary
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("report --json output is not JSON: %v", err)
	}
	if summary.Lines != 5 || summary.TotalWatts != 6475 {
		t.Errorf("summary = %d lines, %v W, want 5 and 6475", summary.Lines, summary.TotalWatts)
	}
}

func TestReport_NoUniverseSelected(t *testing.T) {
	path := writeTestConfig(t, t.TempDir(), 8080)

	_, err := execute(t, "report", "--config", path, "--universe", "0")
	if err == nil || !strings.Contains(err.Error(), "no universe selected") {
		t.Errorf("report --universe 0 error = %v, want no universe selected", err)
	}
}

func TestReport_EmptyRig(t *testing.T) {
	path := writeTestConfig(t, t.TempDir(), 8080)

	out, err := execute(t, "report", "--config", path)
	if err != nil {
		t.Fatalf("report error = %v", err)
	}
	if !strings.Contains(out, "The rig is empty.") {
		t.Errorf("report output = %q, want empty rig notice", out)
	}
}

func TestCatalogCmd(t *testing.T) {
	dir := t.TempDir()
	path := writeTestConfig(t, dir, 8080)

	out, err := execute(t, "catalog", "--config", path, "--json")
	if err != nil {
		t.Fatalf("catalog error = %v", err)
	}
	var fixtures []catalog.FixtureType
	if err := json.Unmarshal([]byte(out), &fixtures); err != nil {
		t.Fatalf("catalog --json output is not JSON: %v", err)
	}
	if len(fixtures) != catalog.Default().Len() {
		t.Errorf("catalog fixtures = %d, want %d", len(fixtures), catalog.Default().Len())
	}

	overlay := filepath.Join(dir, "fixtures.yaml")
	if err := os.WriteFile(overlay, []byte(`
fixtures:
  - id: "generic_par"
    brand: "Generic"
    name: "LED Par"
    default_voltage: 230
    modes:
      - { name: "3ch", channels: 3, power_watts: 60 }
`), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("RIGCALC_CATALOG_FILE", overlay)

	out, err = execute(t, "catalog", "--config", path)
	if err != nil {
		t.Fatalf("catalog with overlay error = %v", err)
	}
	if !strings.Contains(out, "generic_par") || !strings.Contains(out, "Generic LED Par") {
		t.Errorf("catalog output missing overlay fixture:\n%s", out)
	}
}

func TestConfigPathFromEnv(t *testing.T) {
	t.Setenv("RIGCALC_CONFIG", "")
	if got := configPathFromEnv(); got != defaultConfigPath {
		t.Errorf("configPathFromEnv() = %q, want %q", got, defaultConfigPath)
	}

	t.Setenv("RIGCALC_CONFIG", "/etc/rigcalc/config.yaml")
	if got := configPathFromEnv(); got != "/etc/rigcalc/config.yaml" {
		t.Errorf("configPathFromEnv() = %q, want env value", got)
	}
}
