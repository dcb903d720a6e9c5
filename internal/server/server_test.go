package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/printforge/printboard/pkg/pipeline"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	return New(Config{Runner: pipeline.NewRunner(nil, nil, nil)})
}

func postJSON(t *testing.T, srv *Server, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func get(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestGenerate(t *testing.T) {
	srv := testServer(t)
	rec := postJSON(t, srv, "/api/generate", map[string]interface{}{
		"name":           "test_board",
		"rows":           2,
		"cols":           2,
		"switchType":     "gamdias_lp",
		"controllerType": "tinys2",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp generateResponse
	decode(t, rec, &resp)
	if !resp.Success {
		t.Fatal("success = false")
	}
	if resp.BoardID == "" {
		t.Error("board id not set")
	}
	if !strings.HasPrefix(resp.Name, "test_board_") {
		t.Errorf("name = %q, want unique test_board_ prefix", resp.Name)
	}
	if resp.KeyCount != 4 {
		t.Errorf("key count = %d, want 4", resp.KeyCount)
	}
	if resp.Coverage.CoveragePercent != 100 {
		t.Errorf("coverage = %v, want 100", resp.Coverage.CoveragePercent)
	}
	for _, kind := range []string{"scad", "json", "dot"} {
		found := false
		for _, f := range resp.Files {
			if f == kind {
				found = true
			}
		}
		if !found {
			t.Errorf("files %v missing %q", resp.Files, kind)
		}
	}
}

func TestGenerateInvalidSwitch(t *testing.T) {
	srv := testServer(t)
	rec := postJSON(t, srv, "/api/generate", map[string]interface{}{
		"name":           "bad",
		"switchType":     "nonexistent",
		"controllerType": "tinys2",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body = %s", rec.Code, rec.Body.String())
	}

	var resp map[string]interface{}
	decode(t, rec, &resp)
	if resp["success"] != false {
		t.Error("success should be false")
	}
	if resp["code"] != "UNKNOWN_SWITCH" {
		t.Errorf("code = %v, want UNKNOWN_SWITCH", resp["code"])
	}
}

func TestPreview(t *testing.T) {
	srv := testServer(t)
	rec := postJSON(t, srv, "/api/preview", map[string]interface{}{
		"name":           "preview_board",
		"rows":           3,
		"cols":           3,
		"switchType":     "gamdias_lp",
		"controllerType": "tinys2",
		"rowsStagger":    []float64{0, 2, 4},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp previewResponse
	decode(t, rec, &resp)
	if len(resp.Keys) != 9 {
		t.Errorf("keys = %d, want 9", len(resp.Keys))
	}
}

func TestBoardDownload(t *testing.T) {
	srv := testServer(t)
	rec := postJSON(t, srv, "/api/generate", map[string]interface{}{
		"name":           "dl_board",
		"rows":           2,
		"cols":           2,
		"switchType":     "gamdias_lp",
		"controllerType": "tinys2",
	})
	var gen generateResponse
	decode(t, rec, &gen)

	meta := get(t, srv, "/api/boards/"+gen.BoardID)
	if meta.Code != http.StatusOK {
		t.Fatalf("board meta status = %d", meta.Code)
	}

	file := get(t, srv, "/api/boards/"+gen.BoardID+"/files/scad")
	if file.Code != http.StatusOK {
		t.Fatalf("file status = %d", file.Code)
	}
	body, _ := io.ReadAll(file.Body)
	if !strings.Contains(string(body), "switch_cutout") {
		t.Error("scad download missing cutout module")
	}
	if ct := file.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("content type = %q", ct)
	}

	missing := get(t, srv, "/api/boards/"+gen.BoardID+"/files/stl")
	if missing.Code != http.StatusNotFound {
		t.Errorf("missing file status = %d, want 404", missing.Code)
	}
}

func TestBoardNotFound(t *testing.T) {
	srv := testServer(t)
	rec := get(t, srv, "/api/boards/unknown-id")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestComponentListings(t *testing.T) {
	srv := testServer(t)

	var switches struct {
		Success  bool     `json:"success"`
		Switches []string `json:"switches"`
	}
	decode(t, get(t, srv, "/api/switches"), &switches)
	if !contains(switches.Switches, "gamdias_lp") {
		t.Errorf("switches = %v, want gamdias_lp", switches.Switches)
	}

	var controllers struct {
		Success     bool     `json:"success"`
		Controllers []string `json:"controllers"`
	}
	decode(t, get(t, srv, "/api/controllers"), &controllers)
	if !contains(controllers.Controllers, "tinys2") {
		t.Errorf("controllers = %v, want tinys2", controllers.Controllers)
	}
}

func TestPresetListing(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "split60.toml"), []byte("name = \"split60\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	srv := New(Config{
		Runner:     pipeline.NewRunner(nil, nil, nil),
		PresetsDir: dir,
	})

	var resp struct {
		Success bool     `json:"success"`
		Presets []string `json:"presets"`
	}
	decode(t, get(t, srv, "/api/presets"), &resp)
	if len(resp.Presets) != 1 || resp.Presets[0] != "split60" {
		t.Errorf("presets = %v, want [split60]", resp.Presets)
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := httptest.NewRequest(http.MethodGet, "/", nil).Context()

	board := &Board{ID: "b1", Name: "b", Files: map[string][]byte{"scad": []byte("x")}}
	if err := store.Put(ctx, board); err != nil {
		t.Fatal(err)
	}
	got, err := store.Get(ctx, "b1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "b" {
		t.Errorf("name = %q", got.Name)
	}
	if err := store.Delete(ctx, "b1"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Get(ctx, "b1"); err == nil {
		t.Error("expected not found after delete")
	}
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
