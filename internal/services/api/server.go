package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/storepulse/storepulse/internal/domain/report"
	"github.com/storepulse/storepulse/internal/repository/postgres"
)

type Server struct {
	log *zap.Logger
	uc  *Usecase
}

func NewServer(log *zap.Logger, uc *Usecase) *Server {
	return &Server{log: log, uc: uc}
}

func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /trigger_report", s.handleTrigger)
	mux.HandleFunc("GET /get_report", s.handleGetReport)
	return mux
}

func (s *Server) handleTrigger(w http.ResponseWriter, r *http.Request) {
	id, err := s.uc.Trigger(r.Context())
	if err != nil {
		s.log.Error("trigger report", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not trigger report")
		return
	}
	s.log.Info("report triggered", zap.String("report_id", id.String()))
	writeJSON(w, http.StatusAccepted, map[string]string{"report_id": id.String()})
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("report_id")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "missing report_id parameter")
		return
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid report_id")
		return
	}

	rep, err := s.uc.Poll(r.Context(), id)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			writeError(w, http.StatusNotFound, "report not found")
			return
		}
		s.log.Error("poll report", zap.String("report_id", raw), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not fetch report")
		return
	}

	switch rep.Status {
	case report.StatusComplete:
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="report.csv"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(rep.CSV)
	case report.StatusFailed:
		writeJSON(w, http.StatusOK, map[string]string{"status": "Failed"})
	default:
		writeJSON(w, http.StatusOK, map[string]string{"status": "Running"})
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
