package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"argminer/internal/diagram"
	"argminer/internal/gateway/service/analysis"
)

type DiagramHandler struct {
	svc *analysis.Service
}

func NewDiagramHandler(svc *analysis.Service) *DiagramHandler {
	return &DiagramHandler{svc: svc}
}

// HandleDiagram serves the stored diagram for ?session_id= as plain text.
func (h *DiagramHandler) HandleDiagram(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	q := r.URL.Query()
	sessionID := strings.TrimSpace(q.Get("session_id"))
	if sessionID == "" {
		http.Error(w, "session_id is required", http.StatusBadRequest)
		return
	}
	res, err := h.svc.Diagram(sessionID, q.Get("format"))
	switch {
	case errors.Is(err, analysis.ErrSessionNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case errors.Is(err, diagram.ErrUnknownFormat):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(res.Diagram))
}

func HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"ok": true,
	})
}
