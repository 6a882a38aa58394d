package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/RuchaTekade/polling-app/internal/domain"
	"github.com/RuchaTekade/polling-app/internal/repository"
	"github.com/RuchaTekade/polling-app/internal/results"
	"github.com/RuchaTekade/polling-app/internal/voterid"
)

const maxRequestBody = 1 << 20 // 1 MiB

const minOptions = 2

type errorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type pollCreateRequest struct {
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Options     []string `json:"options"`
	ExpiresAt   *string  `json:"expires_at"`
	IsPublic    *bool    `json:"is_public"`
}

type pollCreateResponse struct {
	ID       string `json:"id"`
	ShareURL string `json:"share_url"`
}

type pollResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	IsPublic    bool       `json:"is_public"`
}

type pollListResponse struct {
	Items []pollResponse `json:"items"`
}

type optionResponse struct {
	ID         string  `json:"id"`
	Text       string  `json:"text"`
	VotesCount int64   `json:"votes_count"`
	Percent    float64 `json:"percent"`
}

type pollDetailResponse struct {
	pollResponse
	Options    []optionResponse `json:"options"`
	TotalVotes int64            `json:"total_votes"`
	ShareURL   string           `json:"share_url"`
}

type voteRequest struct {
	OptionID string `json:"option_id"`
}

type voteResponse struct {
	PollID   string `json:"poll_id"`
	OptionID string `json:"option_id"`
	VoterID  string `json:"voter_id"`
}

type voterIdentityResponse struct {
	VoterID string `json:"voter_id"`
}

func (s *Server) handleListPolls(w http.ResponseWriter, r *http.Request) {
	publicOnly := false
	if val := strings.TrimSpace(r.URL.Query().Get("public")); val != "" {
		parsed, err := strconv.ParseBool(val)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid public value")
			return
		}
		publicOnly = parsed
	}

	polls, err := s.repo.Polls.List(r.Context(), publicOnly)
	if err != nil {
		s.logger.Printf("list polls error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list polls")
		return
	}

	items := make([]pollResponse, 0, len(polls))
	for _, poll := range polls {
		items = append(items, toPollResponse(poll))
	}
	s.respondJSON(w, http.StatusOK, pollListResponse{Items: items})
}

func (s *Server) handleCreatePoll(w http.ResponseWriter, r *http.Request) {
	var req pollCreateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	params, err := buildPollCreateParams(req)
	if err != nil {
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error())
		return
	}

	poll, _, err := s.repo.Polls.Create(r.Context(), params)
	if err != nil {
		s.logger.Printf("create poll error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create poll")
		return
	}

	w.Header().Set("Location", "/polls/"+poll.ID)
	s.respondJSON(w, http.StatusCreated, pollCreateResponse{
		ID:       poll.ID,
		ShareURL: s.shareURL(poll.ID),
	})
}

// buildPollCreateParams trims and validates the creation payload. Blank option
// texts are dropped before the minimum-count check, matching how the creation
// form discards empty rows.
func buildPollCreateParams(req pollCreateRequest) (repository.PollCreateParams, error) {
	var params repository.PollCreateParams

	params.Title = strings.TrimSpace(req.Title)
	if params.Title == "" {
		return params, fmt.Errorf("title is required")
	}

	for _, text := range req.Options {
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			params.OptionTexts = append(params.OptionTexts, trimmed)
		}
	}
	if len(params.OptionTexts) < minOptions {
		return params, fmt.Errorf("at least %d non-empty options are required", minOptions)
	}

	if req.Description != nil {
		if desc := strings.TrimSpace(*req.Description); desc != "" {
			params.Description = &desc
		}
	}

	if req.ExpiresAt != nil && strings.TrimSpace(*req.ExpiresAt) != "" {
		expires, err := time.Parse(time.RFC3339, strings.TrimSpace(*req.ExpiresAt))
		if err != nil {
			return params, fmt.Errorf("expires_at must be an RFC 3339 timestamp")
		}
		params.ExpiresAt = &expires
	}

	params.IsPublic = true
	if req.IsPublic != nil {
		params.IsPublic = *req.IsPublic
	}

	return params, nil
}

func (s *Server) handleGetPoll(w http.ResponseWriter, r *http.Request) {
	pollID := chi.URLParam(r, "pollID")

	poll, err := s.repo.Polls.GetByID(r.Context(), pollID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
			return
		}
		s.logger.Printf("fetch poll error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch poll")
		return
	}

	options, err := s.repo.Polls.Options(r.Context(), poll.ID)
	if err != nil {
		s.logger.Printf("fetch options error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch poll")
		return
	}

	votes, err := s.repo.Votes.ListByPoll(r.Context(), poll.ID)
	if err != nil {
		s.logger.Printf("fetch votes error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch poll")
		return
	}

	tally := results.Tally(options, votes)

	resp := pollDetailResponse{
		pollResponse: toPollResponse(poll),
		Options:      make([]optionResponse, 0, len(options)),
		TotalVotes:   tally.Total,
		ShareURL:     s.shareURL(poll.ID),
	}
	for i, opt := range options {
		count := tally.Counts[i].Count
		resp.Options = append(resp.Options, optionResponse{
			ID:         opt.ID,
			Text:       opt.Text,
			VotesCount: count,
			Percent:    roundToOneDecimal(results.Percent(count, tally.Total)),
		})
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCastVote(w http.ResponseWriter, r *http.Request) {
	pollID := chi.URLParam(r, "pollID")

	voterID := voterid.FromRequest(r)
	if voterID == "" {
		s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing voter identifier")
		return
	}

	var req voteRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if strings.TrimSpace(req.OptionID) == "" {
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "option_id is required")
		return
	}

	poll, err := s.repo.Polls.GetByID(r.Context(), pollID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
			return
		}
		s.logger.Printf("fetch poll for vote failed: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to cast vote")
		return
	}

	// A vote only counts for an option of this poll. The relation check keeps
	// a stale or hostile option_id from landing in another poll's tally.
	option, err := s.repo.Polls.GetOption(r.Context(), strings.TrimSpace(req.OptionID))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "option_id does not belong to this poll")
			return
		}
		s.logger.Printf("fetch option for vote failed: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to cast vote")
		return
	}
	if option.PollID != poll.ID {
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "option_id does not belong to this poll")
		return
	}

	vote, inserted, err := s.repo.Votes.Upsert(r.Context(), repository.VoteUpsertParams{
		PollID:   poll.ID,
		OptionID: option.ID,
		VoterID:  voterID,
	})
	if err != nil {
		s.logger.Printf("upsert vote error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to cast vote")
		return
	}

	status := http.StatusOK
	if inserted {
		status = http.StatusCreated
	}
	s.respondJSON(w, status, voteResponse{
		PollID:   vote.PollID,
		OptionID: vote.OptionID,
		VoterID:  vote.VoterID,
	})
}

func (s *Server) handleGetOwnVote(w http.ResponseWriter, r *http.Request) {
	pollID := chi.URLParam(r, "pollID")

	voterID := voterid.FromRequest(r)
	if voterID == "" {
		s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing voter identifier")
		return
	}

	vote, err := s.repo.Votes.Get(r.Context(), pollID, voterID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
			return
		}
		s.logger.Printf("fetch vote error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch vote")
		return
	}

	s.respondJSON(w, http.StatusOK, voteResponse{
		PollID:   vote.PollID,
		OptionID: vote.OptionID,
		VoterID:  vote.VoterID,
	})
}

func (s *Server) handleVoterIdentity(w http.ResponseWriter, r *http.Request) {
	id := voterid.Issue(w, r)
	s.respondJSON(w, http.StatusOK, voterIdentityResponse{VoterID: id})
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	return nil
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			s.logger.Printf("failed to encode response: %v", err)
		}
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, code, message string) {
	s.respondJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

func (s *Server) respondDecodeError(w http.ResponseWriter, err error) {
	var syntaxError *json.SyntaxError
	var typeError *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxError):
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Malformed JSON payload")
	case errors.As(err, &typeError):
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", fmt.Sprintf("Invalid value for field %s", typeError.Field))
	case errors.Is(err, io.EOF):
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Request body cannot be empty")
	default:
		s.respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Unable to parse request body")
	}
}

func toPollResponse(poll domain.Poll) pollResponse {
	return pollResponse{
		ID:          poll.ID,
		Title:       poll.Title,
		Description: poll.Description,
		CreatedAt:   poll.CreatedAt,
		ExpiresAt:   poll.ExpiresAt,
		IsPublic:    poll.IsPublic,
	}
}

func (s *Server) shareURL(pollID string) string {
	return s.cfg.BaseURL + "/poll/" + pollID
}

func roundToOneDecimal(value float64) float64 {
	return math.Round(value*10) / 10.0
}
