package services

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/google/uuid"

	"resumatch/internal/models"
)

// ErrRequestInFlight is returned by Submit while a previous submission is
// still waiting on the scoring service. The in-flight request is left alone.
var ErrRequestInFlight = errors.New("a request is already in flight")

// MatchSession owns the request lifecycle for one user: the selected resume,
// the job description, and the single RequestState that moves through
// idle, loading and success or failure.
type MatchSession interface {
	SelectFile(name, mediaType string, data []byte) error
	SetJobDescription(text string)
	Submit(ctx context.Context) (models.RequestState, error)
	ClearFile()
	State() models.RequestState
	Candidate() *models.UploadCandidate
	JobDescription() string
}

type matchSession struct {
	validator UploadValidator
	cleaner   JobDescriptionCleaner
	client    MatchClient

	mu             sync.Mutex
	candidate      *models.UploadCandidate
	jobDescription string
	generation     uint64
	state          models.RequestState
}

func NewMatchSession(validator UploadValidator, cleaner JobDescriptionCleaner, client MatchClient) MatchSession {
	return &matchSession{
		validator: validator,
		cleaner:   cleaner,
		client:    client,
		state:     models.RequestState{Phase: models.PhaseIdle},
	}
}

// SelectFile validates and installs a new resume candidate. A valid file
// replaces the previous one and clears any prior result, since a new file
// invalidates a previous analysis. A rejected file leaves the previous
// candidate untouched and surfaces the validation message.
func (s *matchSession) SelectFile(name, mediaType string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	candidate, err := s.validator.ValidateResume(name, mediaType, data)
	if err != nil {
		s.generation++
		s.state = models.RequestState{
			Phase:      models.PhaseFailure,
			Message:    err.Error(),
			Generation: s.generation,
		}
		return err
	}

	s.candidate = candidate
	s.generation++
	s.state = models.RequestState{
		Phase:      models.PhaseIdle,
		Generation: s.generation,
	}
	return nil
}

// SetJobDescription stores the normalized text. Any input change invalidates
// the previous result, so the state returns to idle.
func (s *matchSession) SetJobDescription(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobDescription = s.cleaner.Normalize(text)
	s.generation++
	s.state = models.RequestState{
		Phase:      models.PhaseIdle,
		Generation: s.generation,
	}
}

// ClearFile drops the candidate regardless of request state. As an input
// change it also invalidates any prior result.
func (s *matchSession) ClearFile() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.candidate = nil
	s.generation++
	s.state = models.RequestState{
		Phase:      models.PhaseIdle,
		Generation: s.generation,
	}
}

// Submit performs one round trip to the scoring service. Preconditions: a
// candidate is present, the job description is non-empty and no submission
// is already in flight. The response is installed only if it still belongs
// to the latest generation; a response that was superseded by newer input or
// a newer submission is discarded.
func (s *matchSession) Submit(ctx context.Context) (models.RequestState, error) {
	s.mu.Lock()

	if s.state.Phase == models.PhaseLoading {
		state := s.state
		s.mu.Unlock()
		return state, ErrRequestInFlight
	}

	var err error
	if s.candidate == nil {
		err = models.NewValidationError("file", "no file selected")
	} else {
		err = s.validator.ValidateJobDescription(s.jobDescription)
	}
	if err != nil {
		s.generation++
		s.state = models.RequestState{
			Phase:      models.PhaseFailure,
			Message:    err.Error(),
			Generation: s.generation,
		}
		state := s.state
		s.mu.Unlock()
		return state, err
	}

	s.generation++
	gen := s.generation
	s.state = models.RequestState{
		Phase:      models.PhaseLoading,
		Generation: gen,
	}
	candidate := s.candidate
	jobDescription := s.jobDescription
	s.mu.Unlock()

	requestID := uuid.New().String()
	log.Printf("🔄 Submitting match request %s: %s (%d bytes)\n", requestID, candidate.Name, candidate.SizeBytes)

	// The round trip happens without the lock so inputs stay editable
	// while the request is in flight.
	result, callErr := s.client.CalculateMatch(ctx, candidate, jobDescription)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		log.Printf("⚠️  Discarding stale response for request %s\n", requestID)
		return s.state, nil
	}

	if callErr != nil {
		log.Printf("❌ Match request %s failed: %v\n", requestID, callErr)
		s.state = models.RequestState{
			Phase:      models.PhaseFailure,
			Message:    callErr.Error(),
			Generation: gen,
		}
		return s.state, nil
	}

	log.Printf("✅ Match request %s scored %.2f\n", requestID, result.Score)
	s.state = models.RequestState{
		Phase:      models.PhaseSuccess,
		Result:     result,
		Generation: gen,
	}
	return s.state, nil
}

// State returns a snapshot of the current request state.
func (s *matchSession) State() models.RequestState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Candidate returns the currently selected resume, or nil.
func (s *matchSession) Candidate() *models.UploadCandidate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.candidate
}

// JobDescription returns the stored, normalized job description.
func (s *matchSession) JobDescription() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobDescription
}
