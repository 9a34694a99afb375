package process_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"grabarr/internal/process"
)

// newShareService stubs the resolve API and the media CDN together. Resolve
// calls are counted; media responses briefly block so concurrency can be
// observed.
func newShareService(t *testing.T, resolveCalls, inFlight, maxInFlight *atomic.Int32) (api, cdn *httptest.Server) {
	t.Helper()

	cdn = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if inFlight != nil {
			cur := inFlight.Add(1)
			defer inFlight.Add(-1)
			for {
				prev := maxInFlight.Load()
				if cur <= prev || maxInFlight.CompareAndSwap(prev, cur) {
					break
				}
			}
			time.Sleep(20 * time.Millisecond)
		}
		fmt.Fprintf(w, "media-for-%s", strings.TrimPrefix(r.URL.Path, "/"))
	}))

	api = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if resolveCalls != nil {
			resolveCalls.Add(1)
		}
		// Path shape: /videos/<id>/download-url
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		if len(parts) != 3 {
			http.Error(w, "bad path", http.StatusBadRequest)
			return
		}
		fmt.Fprintf(w, `{"download_url": %q}`, cdn.URL+"/"+parts[1])
	}))

	t.Cleanup(api.Close)
	t.Cleanup(cdn.Close)
	return api, cdn
}

func writeListFile(t *testing.T, dir string, lines ...string) string {
	t.Helper()

	path := filepath.Join(dir, "list.txt")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644); err != nil {
		t.Fatalf("failed to write list file: %v", err)
	}
	return path
}

// TestRunBatch_Scenario downloads two named entries into an empty output
// directory and checks files plus ledger content.
func TestRunBatch_Scenario(t *testing.T) {
	api, _ := newShareService(t, nil, nil, nil)

	tmp := t.TempDir()
	outDir := filepath.Join(tmp, "videos")
	listPath := writeListFile(t, tmp,
		"https://host/share/abc|Intro",
		"https://host/share/def|Setup",
	)

	opts := process.BatchOptions{
		ListFile:    listPath,
		OutputDir:   outDir,
		APIBase:     api.URL,
		Concurrency: 5,
	}

	if err := process.RunBatch(context.Background(), opts, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for name, want := range map[string]string{
		"Intro.mp4": "media-for-abc",
		"Setup.mp4": "media-for-def",
	} {
		data, err := os.ReadFile(filepath.Join(outDir, name))
		if err != nil {
			t.Fatalf("expected output file %q: %v", name, err)
		}
		if string(data) != want {
			t.Errorf("%q content = %q, want %q", name, data, want)
		}
	}

	ledgerData, err := os.ReadFile(filepath.Join(outDir, "downloaded.txt"))
	if err != nil {
		t.Fatalf("ledger not written: %v", err)
	}
	ids := strings.Fields(string(ledgerData))
	if len(ids) != 2 {
		t.Fatalf("ledger lines = %v", ids)
	}
	found := map[string]bool{}
	for _, id := range ids {
		found[id] = true
	}
	if !found["abc"] || !found["def"] {
		t.Fatalf("ledger missing IDs: %v", ids)
	}
}

// TestRunBatch_SkipsLedgeredEntries checks entries already in the ledger
// trigger zero resolver calls.
func TestRunBatch_SkipsLedgeredEntries(t *testing.T) {
	var resolveCalls atomic.Int32
	api, _ := newShareService(t, &resolveCalls, nil, nil)

	tmp := t.TempDir()
	outDir := filepath.Join(tmp, "videos")
	listPath := writeListFile(t, tmp,
		"https://host/share/abc|First",
		"https://host/share/def|Second",
	)

	ledgerPath := filepath.Join(tmp, "downloaded.txt")
	if err := os.WriteFile(ledgerPath, []byte("abc\ndef\n"), 0644); err != nil {
		t.Fatalf("failed to seed ledger: %v", err)
	}

	opts := process.BatchOptions{
		ListFile:   listPath,
		OutputDir:  outDir,
		LedgerPath: ledgerPath,
		APIBase:    api.URL,
	}

	if err := process.RunBatch(context.Background(), opts, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := resolveCalls.Load(); got != 0 {
		t.Fatalf("expected 0 resolver calls for ledgered entries, got %d", got)
	}
	if _, err := os.Stat(filepath.Join(outDir, "First.mp4")); !os.IsNotExist(err) {
		t.Fatal("skipped entry should not produce a file")
	}
}

// TestRunBatch_ConcurrencyCap checks at most L media transfers are ever in
// flight for M > L entries.
func TestRunBatch_ConcurrencyCap(t *testing.T) {
	var resolveCalls, inFlight, maxInFlight atomic.Int32
	api, _ := newShareService(t, &resolveCalls, &inFlight, &maxInFlight)

	tmp := t.TempDir()
	outDir := filepath.Join(tmp, "videos")

	const entries = 12
	const limit = 3

	lines := make([]string, entries)
	for i := range lines {
		lines[i] = fmt.Sprintf("https://host/share/vid%02d", i)
	}
	listPath := writeListFile(t, tmp, lines...)

	opts := process.BatchOptions{
		ListFile:    listPath,
		OutputDir:   outDir,
		APIBase:     api.URL,
		Concurrency: limit,
	}

	if err := process.RunBatch(context.Background(), opts, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := maxInFlight.Load(); got > limit {
		t.Fatalf("observed %d concurrent transfers, cap is %d", got, limit)
	}
	if got := resolveCalls.Load(); got != entries {
		t.Fatalf("expected %d resolver calls, got %d", entries, got)
	}

	files, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatalf("failed to read output dir: %v", err)
	}
	// entries + ledger file
	if len(files) != entries+1 {
		t.Fatalf("expected %d files in output dir, got %d", entries+1, len(files))
	}
}

// TestRunBatch_FailureIsolation checks one failing entry does not stop its
// siblings and does not error the run.
func TestRunBatch_FailureIsolation(t *testing.T) {
	cdn := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "ok-bytes")
	}))
	defer cdn.Close()

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "bad") {
			http.Error(w, "no such video", http.StatusNotFound)
			return
		}
		fmt.Fprintf(w, `{"download_url": %q}`, cdn.URL)
	}))
	defer api.Close()

	tmp := t.TempDir()
	outDir := filepath.Join(tmp, "videos")
	listPath := writeListFile(t, tmp,
		"https://host/share/bad",
		"https://host/share/good|Fine",
	)

	opts := process.BatchOptions{
		ListFile:  listPath,
		OutputDir: outDir,
		APIBase:   api.URL,
		Retries:   1,
	}

	if err := process.RunBatch(context.Background(), opts, nil); err != nil {
		t.Fatalf("batch failures must not error the run, got: %v", err)
	}

	if _, err := os.Stat(filepath.Join(outDir, "Fine.mp4")); err != nil {
		t.Fatalf("sibling download missing: %v", err)
	}

	ledgerData, err := os.ReadFile(filepath.Join(outDir, "downloaded.txt"))
	if err != nil {
		t.Fatalf("ledger not written: %v", err)
	}
	if strings.Contains(string(ledgerData), "bad") {
		t.Fatal("failed entry must not reach the ledger")
	}
	if !strings.Contains(string(ledgerData), "good") {
		t.Fatal("successful entry missing from ledger")
	}
}

// TestRunSingle checks the one-off path writes the file with the default
// identifier-based name.
func TestRunSingle(t *testing.T) {
	cdn := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "solo-bytes")
	}))
	defer cdn.Close()

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"download_url": %q}`, cdn.URL)
	}))
	defer api.Close()

	outDir := t.TempDir()

	opts := process.SingleOptions{
		URL:       "https://host/share/xyz?t=1",
		OutputDir: outDir,
		APIBase:   api.URL,
	}

	if err := process.RunSingle(context.Background(), opts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "xyz.mp4"))
	if err != nil {
		t.Fatalf("output missing: %v", err)
	}
	if string(data) != "solo-bytes" {
		t.Fatalf("content = %q", data)
	}

	// No ledger file in single mode.
	if _, err := os.Stat(filepath.Join(outDir, "downloaded.txt")); !os.IsNotExist(err) {
		t.Fatal("single mode must not touch the ledger")
	}
}

// TestRunSingle_Failure checks errors propagate to the caller.
func TestRunSingle_Failure(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer api.Close()

	opts := process.SingleOptions{
		URL:       "https://host/share/xyz",
		OutputDir: t.TempDir(),
		APIBase:   api.URL,
	}

	if err := process.RunSingle(context.Background(), opts); err == nil {
		t.Fatal("expected propagated failure, got nil")
	}
}
