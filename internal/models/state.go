package models

type RequestPhase string

const (
	PhaseIdle    RequestPhase = "idle"
	PhaseLoading RequestPhase = "loading"
	PhaseSuccess RequestPhase = "success"
	PhaseFailure RequestPhase = "failure"
)

// RequestState is the single value describing where the client is in its
// submit cycle. Result is set only in PhaseSuccess and Message only in
// PhaseFailure, so a loading state can never carry a stale result.
type RequestState struct {
	Phase      RequestPhase `json:"phase"`
	Result     *MatchResult `json:"result,omitempty"`
	Message    string       `json:"message,omitempty"`
	Generation uint64       `json:"generation"`
}
