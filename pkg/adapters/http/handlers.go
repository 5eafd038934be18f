package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/pkg/cipher"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/loader"
	"github.com/aretw0/turing/pkg/machine"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/go-chi/chi/v5"
)

// RunRequest is the body of POST /machines/{name}/run.
type RunRequest struct {
	Input string `json:"input"`
}

// DocumentRunRequest is the body of POST /run: an inline machine document and its input.
type DocumentRunRequest struct {
	Machine map[string]any `json:"machine"`
	Input   string         `json:"input"`
}

// CipherRequest is the body of POST /encrypt and POST /decrypt.
type CipherRequest struct {
	Key     string `json:"key"`
	Message string `json:"message"`
}

// RunResponse describes a finished run.
type RunResponse struct {
	ID         string         `json:"id"`
	Machine    string         `json:"machine"`
	Input      string         `json:"input"`
	Output     string         `json:"output"`
	Outcome    domain.Outcome `json:"outcome"`
	FinalState string         `json:"final_state"`
	Steps      int            `json:"steps"`
	Head       int            `json:"head"`
	Shift      *int           `json:"shift,omitempty"`
}

func newRunResponse(r *domain.RunRecord) RunResponse {
	return RunResponse{
		ID:         r.ID,
		Machine:    r.Machine,
		Input:      r.Input,
		Output:     r.Result.Output,
		Outcome:    r.Result.Outcome,
		FinalState: string(r.Result.FinalState),
		Steps:      r.Result.Steps,
		Head:       r.Result.Head,
	}
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"app":        "turing-http",
		"version":    strings.TrimSpace(turing.Version),
		"step_limit": s.stepLimit,
		"store":      s.Store != nil,
	})
}

// ListMachines handles the GET /machines request.
func (s *Server) ListMachines(w http.ResponseWriter, r *http.Request) {
	names, err := s.Machines.ListMachines()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"machines": names})
}

// GetMachine handles the GET /machines/{name} request with the machine document.
func (s *Server) GetMachine(w http.ResponseWriter, r *http.Request) {
	spec, err := s.Machines.GetMachine(chi.URLParam(r, "name"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, loader.FromDefinition(spec.Definition()))
}

// RunMachine handles the POST /machines/{name}/run request.
func (s *Server) RunMachine(w http.ResponseWriter, r *http.Request) {
	var body RunRequest
	if !s.decode(w, r, &body) {
		return
	}
	spec, err := s.Machines.GetMachine(chi.URLParam(r, "name"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondRun(w, r, spec, body.Input)
}

// RunDocument handles the POST /run request, compiling the machine from the body.
func (s *Server) RunDocument(w http.ResponseWriter, r *http.Request) {
	var body DocumentRunRequest
	if !s.decode(w, r, &body) {
		return
	}
	if body.Machine == nil {
		http.Error(w, "missing machine document", http.StatusBadRequest)
		return
	}

	doc, err := loader.DecodeMap(body.Machine)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	def, err := doc.Definition()
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	spec, err := machine.Compile(def)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondRun(w, r, spec, body.Input)
}

func (s *Server) cipherHandler(mode cipher.Mode) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body CipherRequest
		if !s.decode(w, r, &body) {
			return
		}
		shift, err := cipher.ParseKey(body.Key)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		m, err := s.cipher.Machine(mode, shift)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		record, err := m.Record(r.Context(), body.Message)
		if err != nil {
			s.fail(w, r, err)
			return
		}

		resp := newRunResponse(record)
		resp.Shift = &shift
		s.writeJSON(w, http.StatusOK, resp)
	}
}

func (s *Server) respondRun(w http.ResponseWriter, r *http.Request, spec *machine.Spec, input string) {
	record, err := s.record(r.Context(), spec, input)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newRunResponse(record))
}

func (s *Server) record(ctx context.Context, spec *machine.Spec, input string) (*domain.RunRecord, error) {
	m, err := turing.New(spec, s.machineOptions()...)
	if err != nil {
		return nil, err
	}
	return m.Record(ctx, input)
}

// ListRuns handles the GET /runs request.
func (s *Server) ListRuns(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	ids, err := s.Store.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"runs": ids})
}

// GetRun handles the GET /runs/{id} request.
func (s *Server) GetRun(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	record, err := s.Store.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newRunResponse(record))
}

// DeleteRun handles the DELETE /runs/{id} request.
func (s *Server) DeleteRun(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	if err := s.Store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// -- Helpers --

func (s *Server) requireStore(w http.ResponseWriter) bool {
	if s.Store == nil {
		http.Error(w, "run store not configured", http.StatusNotImplemented)
		return false
	}
	return true
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("invalid request body", "path", r.URL.Path, "error", err)
		return false
	}
	return true
}

// fail maps domain errors to status codes.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	var aggr *machine.AggregateError
	switch {
	case errors.Is(err, ports.ErrMachineNotFound), errors.Is(err, domain.ErrRunNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrForeignSymbol), errors.Is(err, domain.ErrInvalidStepLimit):
		status = http.StatusBadRequest
	case errors.As(err, &aggr):
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	} else {
		s.logger.Debug("request rejected", "path", r.URL.Path, "status", status, "error", err)
	}
	http.Error(w, fmt.Sprintf("%v", err), status)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}
