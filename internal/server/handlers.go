package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/agbru/bigcalc/internal/bigint"
	"github.com/agbru/bigcalc/internal/engine"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/service"
	"github.com/agbru/bigcalc/pkg/models"
)

// handleHealth reports that the service is up.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	response := map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	}

	s.writeJSONResponse(w, http.StatusOK, response)
}

// handleEngines lists the registered engines.
func (s *Server) handleEngines(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	s.writeJSONResponse(w, http.StatusOK, models.EnginesResponse{
		Engines: s.factory.List(),
		Default: s.defaultEngine(),
	})
}

// handleCalculate evaluates GET /calculate?op=<op>&a=<int>&b=<int>&engine=<name>.
// Malformed parameters and arithmetic precondition failures answer 400 with
// an ErrorResponse; a successful operation answers 200 with a models.Result.
func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	req, engineName, err := s.parseCalculateParams(r)
	if err != nil {
		var parseErr CalculateParseError
		if errors.As(err, &parseErr) {
			s.writeErrorResponse(w, parseErr.StatusCode, parseErr.Message)
		} else {
			s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
	defer cancel()

	start := time.Now()
	result, err := s.service.Compute(ctx, engineName, req)
	duration := time.Since(start)

	switch {
	case err == nil:
	case errors.Is(err, service.ErrMaxDigitsExceeded):
		s.writeErrorResponse(w, http.StatusBadRequest,
			fmt.Sprintf("Operands are limited to %d digits. This limit prevents resource exhaustion.", s.securityConfig.MaxDigits))
		return
	case errors.Is(err, service.ErrWorkLimitExceeded):
		s.writeErrorResponse(w, http.StatusBadRequest,
			fmt.Sprintf("%v. This limit prevents resource exhaustion.", err))
		return
	case apperrors.IsArithmeticError(err), apperrors.IsInputError(err):
		s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, context.DeadlineExceeded):
		s.writeErrorResponse(w, http.StatusServiceUnavailable, "The operation exceeded the request timeout")
		return
	default:
		s.logger.Error("operation failed", err, logging.String("expression", req.String()))
		s.writeErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.writeJSONResponse(w, http.StatusOK, buildCalculateResponse(req, s.engineDisplayName(engineName), result, duration))
}

// parseCalculateParams reads the operation, its operands and the engine
// name from the query string.
func (s *Server) parseCalculateParams(r *http.Request) (engine.Request, string, error) {
	q := r.URL.Query()

	opStr := q.Get("op")
	if opStr == "" {
		return engine.Request{}, "", CalculateParseError{Message: "Missing 'op' parameter", StatusCode: http.StatusBadRequest}
	}
	op, err := engine.ParseOp(opStr)
	if err != nil {
		return engine.Request{}, "", CalculateParseError{
			Message:    fmt.Sprintf("Invalid 'op' parameter: %q (accepted: add, sub, mul, div, mod, pow, fact)", opStr),
			StatusCode: http.StatusBadRequest,
		}
	}

	req := engine.Request{Op: op}
	names := []string{"a", "b"}
	if op.Unary() {
		names = names[:1]
	}
	dst := []*bigint.Int{&req.A, &req.B}
	for i, name := range names {
		raw := strings.TrimSpace(q.Get(name))
		if raw == "" {
			return engine.Request{}, "", CalculateParseError{
				Message:    fmt.Sprintf("Missing '%s' parameter", name),
				StatusCode: http.StatusBadRequest,
			}
		}
		if limit := s.securityConfig.MaxDigits; limit > 0 && len(raw) > limit+1 {
			return engine.Request{}, "", CalculateParseError{
				Message:    fmt.Sprintf("Parameter '%s' exceeds %d digits", name, limit),
				StatusCode: http.StatusBadRequest,
			}
		}
		x, err := bigint.Parse(raw)
		if err != nil {
			return engine.Request{}, "", CalculateParseError{
				Message:    fmt.Sprintf("Invalid '%s' parameter: must be an integer", name),
				StatusCode: http.StatusBadRequest,
			}
		}
		*dst[i] = x
	}

	engineName := strings.ToLower(q.Get("engine"))
	if engineName == "" {
		engineName = s.defaultEngine()
	}
	if !hasEngine(s.factory, engineName) {
		return engine.Request{}, "", CalculateParseError{
			Message:    fmt.Sprintf("Unknown engine %q (available: %s)", engineName, strings.Join(s.factory.List(), ", ")),
			StatusCode: http.StatusBadRequest,
		}
	}

	return req, engineName, nil
}

func hasEngine(f engine.Factory, name string) bool {
	for _, n := range f.List() {
		if n == name {
			return true
		}
	}
	return false
}

func (s *Server) engineDisplayName(name string) string {
	if e, err := s.factory.Get(name); err == nil {
		return e.Name()
	}
	return name
}

// buildCalculateResponse builds the record of a successful operation.
func buildCalculateResponse(req engine.Request, engineName string, result bigint.Int, duration time.Duration) models.Result {
	resp := models.Result{
		Operation:  string(req.Op),
		Expression: req.String(),
		Engine:     engineName,
		Result:     result.String(),
		Digits:     result.Len(),
	}
	resp.SetDuration(duration)
	return resp
}

// writeJSONResponse writes data as JSON with the given status code.
func (s *Server) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encoding JSON response", err)
	}
}

// writeErrorResponse writes a standardized ErrorResponse.
func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	errResp := ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	s.writeJSONResponse(w, statusCode, errResp)
}
