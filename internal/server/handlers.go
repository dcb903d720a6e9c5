package server

import (
	"encoding/json"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/printforge/printboard/pkg/config"
	"github.com/printforge/printboard/pkg/errors"
	"github.com/printforge/printboard/pkg/geom"
	"github.com/printforge/printboard/pkg/layout"
	"github.com/printforge/printboard/pkg/pipeline"
	"github.com/printforge/printboard/pkg/route"
)

// generateResponse is the POST /api/generate reply.
type generateResponse struct {
	Success  bool                  `json:"success"`
	BoardID  string                `json:"board_id"`
	Name     string                `json:"name"`
	Config   config.KeyboardConfig `json:"config"`
	Coverage route.CoverageStats   `json:"coverage_stats"`
	Files    []string              `json:"files"`
	KeyCount int                   `json:"key_count"`
}

// previewResponse is the POST /api/preview reply. Only the layout is
// planned; no routing or rendering happens.
type previewResponse struct {
	Success bool                 `json:"success"`
	Name    string               `json:"name"`
	Keys    []layout.KeyPosition `json:"keys"`
	Bounds  geom.Rect            `json:"bounds"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req config.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode request"))
		return
	}

	cfg, err := req.ToConfig()
	if err != nil {
		s.writeError(w, err)
		return
	}
	cfg.Name = config.UniqueName(cfg.Name)

	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		Config: cfg,
		Seed:   req.Seed,
		Formats: []string{
			pipeline.FormatSCAD,
			pipeline.FormatJSON,
			pipeline.FormatDOT,
		},
		Logger: s.logger,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	board := &Board{
		ID:        uuid.NewString(),
		Name:      cfg.Name,
		CreatedAt: time.Now().UTC(),
		Config:    cfg,
		Coverage:  result.Routes.Coverage,
		KeyCount:  result.Stats.KeyCount,
		Files:     result.Artifacts,
	}
	if err := s.store.Put(r.Context(), board); err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{
		Success:  true,
		BoardID:  board.ID,
		Name:     board.Name,
		Config:   cfg,
		Coverage: board.Coverage,
		Files:    board.FileKinds(),
		KeyCount: board.KeyCount,
	})
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	var req config.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode request"))
		return
	}

	cfg, err := req.ToConfig()
	if err != nil {
		s.writeError(w, err)
		return
	}

	plan, err := s.runner.ComputeLayout(r.Context(), pipeline.Options{
		Config: cfg,
		Logger: s.logger,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, previewResponse{
		Success: true,
		Name:    cfg.Name,
		Keys:    plan.Keys,
		Bounds:  plan.Bounds,
	})
}

func (s *Server) handleSwitches(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"switches": s.runner.Switches.List(),
	})
}

func (s *Server) handleControllers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"controllers": s.runner.Controllers.List(),
	})
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	presets := []string{}
	if s.presetsDir != "" {
		entries, err := os.ReadDir(s.presetsDir)
		if err != nil && !os.IsNotExist(err) {
			s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "read presets dir"))
			return
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".toml") {
				continue
			}
			presets = append(presets, strings.TrimSuffix(entry.Name(), ".toml"))
		}
		sort.Strings(presets)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"presets": presets,
	})
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	board, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":        true,
		"id":             board.ID,
		"name":           board.Name,
		"created_at":     board.CreatedAt,
		"config":         board.Config,
		"coverage_stats": board.Coverage,
		"key_count":      board.KeyCount,
		"files":          board.FileKinds(),
	})
}

func (s *Server) handleBoardFile(w http.ResponseWriter, r *http.Request) {
	board, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	kind := chi.URLParam(r, "kind")
	data, ok := board.Files[kind]
	if !ok {
		s.writeError(w, errors.New(errors.ErrCodeFileNotFound,
			"board %q has no %q file", board.ID, kind))
		return
	}

	w.Header().Set("Content-Type", contentType(kind))
	w.Header().Set("Content-Disposition",
		"attachment; filename="+board.Name+"."+kind)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func contentType(kind string) string {
	switch kind {
	case pipeline.FormatJSON:
		return "application/json"
	case pipeline.FormatSVG:
		return "image/svg+xml"
	case pipeline.FormatSTL:
		return "model/stl"
	default:
		return "text/plain; charset=utf-8"
	}
}

// writeError maps error codes to HTTP statuses and writes the standard
// error envelope.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.IsConfiguration(err):
		status = http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeNotFound), errors.Is(err, errors.ErrCodeFileNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errors.ErrCodeRendererMissing):
		status = http.StatusServiceUnavailable
	}

	if status >= 500 {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"error":   errors.UserMessage(err),
		"code":    string(errors.GetCode(err)),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
