package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"allocation-dashboard/internal/domain"
	"allocation-dashboard/internal/loader"
	"allocation-dashboard/internal/logging"
	"allocation-dashboard/internal/source"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 64 << 10

type errorResponse struct {
	Error string `json:"error"`
}

// loadRequest is the body of POST /api/load.
type loadRequest struct {
	Period Period `json:"period"`
}

// askRequest is the body of POST /ask.
type askRequest struct {
	Period   Period `json:"period"`
	Question string `json:"question"`
}

type askResponse struct {
	Answer string `json:"answer"`
}

// Period accepts a JSON string or number.
type Period string

func (p *Period) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = Period(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.New("period must be a string or number")
	}
	*p = Period(n.String())
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{"status": "ok"}
	if s.session != nil {
		if d := s.session.Current(); d != nil {
			status["period"] = d.Period
			status["generation"] = d.Generation
		}
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleCurrent(w http.ResponseWriter, r *http.Request) {
	if s.session == nil {
		writeError(w, http.StatusNotFound, "no session")
		return
	}
	d := s.session.Current()
	if d == nil {
		writeError(w, http.StatusNotFound, "no dashboard loaded")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handlePeriod(w http.ResponseWriter, r *http.Request) {
	if s.pipeline == nil {
		writeError(w, http.StatusNotFound, "no pipeline")
		return
	}
	d, err := s.pipeline.Load(r.Context(), chi.URLParam(r, "period"))
	if err != nil {
		s.writeLoadError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	if s.session == nil {
		writeError(w, http.StatusNotFound, "no session")
		return
	}
	var req loadRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	d, err := s.session.Load(r.Context(), string(req.Period))
	if err != nil {
		s.writeLoadError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	period := strings.TrimSpace(string(req.Period))

	if s.remote != nil {
		answer := s.remote.Ask(r.Context(), period, req.Question)
		s.metrics.RecordAsk("remote")
		writeJSON(w, http.StatusOK, askResponse{Answer: answer})
		return
	}

	records, err := s.recordsFor(r, period)
	if err != nil {
		s.metrics.RecordAsk("error")
		s.writeLoadError(w, r, err)
		return
	}
	answer, intent := s.answerer.Answer(records, req.Question)
	s.metrics.RecordAsk(string(intent))
	writeJSON(w, http.StatusOK, askResponse{Answer: answer})
}

// recordsFor returns the first strategy's records for period, reusing the
// current dashboard when it already shows that period.
func (s *Server) recordsFor(r *http.Request, period string) ([]domain.Record, error) {
	if s.session != nil {
		if d := s.session.Current(); d != nil && d.Period == period && len(d.Strategies) > 0 {
			return d.Strategies[0].Records, nil
		}
	}
	if s.pipeline == nil {
		return nil, errors.New("no pipeline")
	}
	d, err := s.pipeline.Load(r.Context(), period)
	if err != nil {
		return nil, err
	}
	return d.Strategies[0].Records, nil
}

// writeLoadError maps load failures to statuses. Fetch failures expose only
// the "failed to load: <path>" message.
func (s *Server) writeLoadError(w http.ResponseWriter, r *http.Request, err error) {
	l := logging.FromContext(r.Context(), s.logger)

	var fe *source.FetchError
	switch {
	case errors.Is(err, loader.ErrInvalidPeriod):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, loader.ErrSuperseded):
		writeError(w, http.StatusConflict, err.Error())
	case errors.As(err, &fe):
		status := http.StatusBadGateway
		if errors.Is(err, source.ErrNotFound) {
			status = http.StatusNotFound
		}
		l.Warn("dataset load failed", zap.String("path", fe.Path), zap.NamedError("cause", fe.Err))
		writeError(w, status, fe.Error())
	default:
		l.Error("load failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return errors.New("invalid request body: " + err.Error())
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
