package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/finlens/finlens/internal/chat"
	"github.com/finlens/finlens/internal/format"
	"github.com/finlens/finlens/internal/ingest"
	"github.com/finlens/finlens/internal/statement"
)

// rowView is one table row with raw figures and display-formatted cells.
type rowView struct {
	Name          string  `json:"name"`
	Prior         float64 `json:"prior"`
	Current       float64 `json:"current"`
	Growth        float64 `json:"growth_pct"`
	PriorWeight   float64 `json:"prior_weight_pct"`
	CurrentWeight float64 `json:"current_weight_pct"`

	Display rowDisplay `json:"display"`
}

type rowDisplay struct {
	Prior         string `json:"prior"`
	Current       string `json:"current"`
	Growth        string `json:"growth"`
	PriorWeight   string `json:"prior_weight"`
	CurrentWeight string `json:"current_weight"`
}

// liquidityView carries both ratios and the delta, display-formatted.
type liquidityView struct {
	Prior   string `json:"prior"`
	Current string `json:"current"`
	Delta   string `json:"delta"`
}

type analysisResponse struct {
	Rows      []rowView     `json:"rows"`
	Liquidity liquidityView `json:"liquidity"`
	AIEnabled bool          `json:"ai_enabled"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleUpload ingests a statement workbook, runs the ratio engine through
// the content-addressed cache, and stores the result on the session.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.get(w, r)

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Upload.MaxBytes)
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "upload a spreadsheet in the 'file' form field")
		return
	}
	defer file.Close()

	raw, err := ingest.ReadStatement(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, uploadMessage(err))
		return
	}

	computed, err := s.cache.Compute(raw)
	if err != nil {
		// Structural errors block the whole pass; no partial table.
		writeError(w, http.StatusUnprocessableEntity, computeMessage(err))
		return
	}

	snap := statement.Liquidity(computed)
	sess.setStatement(computed, snap)

	zap.L().Info("statement analyzed",
		zap.String("session", sess.id),
		zap.Int("rows", len(computed.Rows)),
		zap.String("fingerprint", statement.Fingerprint(computed)),
	)

	writeJSON(w, http.StatusOK, s.buildAnalysis(computed, snap))
}

func (s *Server) buildAnalysis(st *statement.Statement, snap statement.Snapshot) analysisResponse {
	resp := analysisResponse{
		Rows:      make([]rowView, len(st.Rows)),
		AIEnabled: s.aiEnabled,
		Liquidity: liquidityView{
			Prior:   format.Ratio(snap.Prior),
			Current: format.Ratio(snap.Current),
			Delta:   format.Unavailable,
		},
	}
	if delta, ok := snap.Delta(); ok {
		resp.Liquidity.Delta = format.Delta(delta)
	}

	for i, row := range st.Rows {
		resp.Rows[i] = rowView{
			Name:          row.Name,
			Prior:         row.Prior,
			Current:       row.Current,
			Growth:        row.Growth,
			PriorWeight:   row.PriorWeight,
			CurrentWeight: row.CurrentWeight,
			Display: rowDisplay{
				Prior:         format.Value(row.Prior),
				Current:       format.Value(row.Current),
				Growth:        format.Percent(row.Growth),
				PriorWeight:   format.Percent(row.PriorWeight),
				CurrentWeight: format.Percent(row.CurrentWeight),
			},
		}
	}
	return resp
}

// handleNarrative returns AI commentary for the session's current
// statement. The narrative service always yields display-ready text, so
// this handler only fails when nothing has been uploaded yet.
func (s *Server) handleNarrative(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.get(w, r)

	st, snap, ok := sess.current()
	if !ok {
		writeError(w, http.StatusConflict, "upload a statement before requesting analysis")
		return
	}

	text := s.narrative.Analyze(r.Context(), st, snap)
	writeJSON(w, http.StatusOK, map[string]string{"narrative": text})
}

type chatResponse struct {
	Enabled  bool           `json:"enabled"`
	Messages []chat.Message `json:"messages"`
}

func (s *Server) handleChatHistory(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.get(w, r)

	if !s.chats.Enabled() {
		writeJSON(w, http.StatusOK, chatResponse{Enabled: false})
		return
	}

	cs, err := s.chats.Session(r.Context(), sess.id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "chat session unavailable")
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{Enabled: true, Messages: cs.History()})
}

func (s *Server) handleChatSend(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.get(w, r)

	if !s.chats.Enabled() {
		writeError(w, http.StatusServiceUnavailable, "chat is disabled: no LLM API key is configured")
		return
	}

	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	cs, err := s.chats.Session(r.Context(), sess.id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "chat session unavailable")
		return
	}

	// Blocking single turn; failures land in the transcript, not here.
	cs.Send(r.Context(), req.Message)

	writeJSON(w, http.StatusOK, chatResponse{Enabled: true, Messages: cs.History()})
}

func (s *Server) handleChatReset(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.get(w, r)

	if !s.chats.Enabled() {
		writeError(w, http.StatusServiceUnavailable, "chat is disabled: no LLM API key is configured")
		return
	}

	if err := s.chats.Reset(r.Context(), sess.id); err != nil {
		writeError(w, http.StatusInternalServerError, "could not reset chat session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// uploadMessage maps ingest failures to blocking user-facing messages.
func uploadMessage(err error) string {
	switch {
	case eris.Is(err, ingest.ErrColumnCount):
		return "The spreadsheet must have exactly 3 columns: line item, prior-year value, current-year value."
	case eris.Is(err, ingest.ErrEmpty), eris.Is(err, ingest.ErrNoSheet):
		return "The spreadsheet has no data rows to analyze."
	default:
		return "Could not read the uploaded file. Check that it is a valid .xlsx workbook."
	}
}

// computeMessage maps ratio-engine failures to blocking user-facing
// messages.
func computeMessage(err error) string {
	switch {
	case eris.Is(err, statement.ErrNoTotalAssets):
		return "No 'TOTAL ASSETS' line item found. The statement needs one to compute asset weights."
	case eris.Is(err, statement.ErrAmbiguousLineItem):
		return "More than one line item matches 'TOTAL ASSETS'. Rename the duplicates and re-upload."
	default:
		return "The statement could not be analyzed."
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("write response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
