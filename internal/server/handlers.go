package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/daily-almanac/internal/generator"
)

// GenerateRequest asks for one fortune from an explicit seed key.
type GenerateRequest struct {
	Key string `json:"key" validate:"required"`
}

// GenerateResponse carries the generated markdown text.
type GenerateResponse struct {
	Key      string `json:"key"`
	Fortune  string `json:"fortune"`
	Snapshot string `json:"snapshot"`
}

// FortuneRequest asks for a user's daily do/do-not pair.
type FortuneRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

// FortuneResponse carries both halves of the daily pair.
type FortuneResponse struct {
	UserID   string `json:"user_id"`
	Date     string `json:"date"`
	Do       string `json:"do"`
	DoNot    string `json:"do_not"`
	Snapshot string `json:"snapshot"`
}

// handleGenerate produces a fortune for an arbitrary seed key. The
// same key always yields the same text for a given snapshot.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := validator.New().Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "'key' is required")
		return
	}

	text, err := s.gen.Generate(req.Key)
	if err != nil {
		s.generationError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, GenerateResponse{
		Key:      req.Key,
		Fortune:  text,
		Snapshot: s.version,
	})
}

// handleFortune produces the daily do/do-not pair for a user. The date
// boundary follows the generator's fixed zone, not the server's.
func (s *Server) handleFortune(w http.ResponseWriter, r *http.Request) {
	var req FortuneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := validator.New().Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "'user_id' is required")
		return
	}

	now := time.Now()
	doText, doNotText, err := s.gen.DailyPair(req.UserID, now)
	if err != nil {
		s.generationError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, FortuneResponse{
		UserID:   req.UserID,
		Date:     now.In(generator.FortuneZone()).Format("2006-01-02"),
		Do:       doText,
		DoNot:    doNotText,
		Snapshot: s.version,
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"snapshot": s.version,
	})
}

// generationError maps generator failures onto HTTP statuses. A
// snapshot that cannot serve a request is a server-side problem, not a
// caller mistake.
func (s *Server) generationError(w http.ResponseWriter, err error) {
	var noTmpl *generator.NoTemplatesError
	var unknown *generator.UnknownCategoryError
	var empty *generator.EmptyCategoryError
	if errors.As(err, &noTmpl) || errors.As(err, &unknown) || errors.As(err, &empty) {
		log.Printf("generation failed: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "snapshot cannot serve this request")
		return
	}
	s.errorResponse(w, http.StatusInternalServerError, err.Error())
}
