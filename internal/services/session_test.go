package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumatch/internal/models"
)

func newTestSession(baseURL string) MatchSession {
	validator := NewUploadValidator(5242880, false)
	cleaner := NewJobDescriptionCleaner()
	client := NewMatchClient(baseURL, time.Second)
	return NewMatchSession(validator, cleaner, client)
}

func scoreServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func TestSelectFileRejectsInvalidCandidates(t *testing.T) {
	tests := []struct {
		name        string
		fileName    string
		mediaType   string
		data        []byte
		wantMessage string
	}{
		{name: "non-PDF media type", fileName: "resume.pdf", mediaType: "image/png", data: samplePDF, wantMessage: "only PDF files are accepted"},
		{name: "wrong extension", fileName: "resume.txt", mediaType: "", data: samplePDF, wantMessage: "invalid file extension"},
		{name: "not a PDF payload", fileName: "resume.pdf", mediaType: "", data: []byte("plain text"), wantMessage: "not a valid PDF document"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := newTestSession("http://localhost:8000")

			err := session.SelectFile(tt.fileName, tt.mediaType, tt.data)
			require.Error(t, err)

			assert.Nil(t, session.Candidate())

			state := session.State()
			assert.Equal(t, models.PhaseFailure, state.Phase)
			assert.Contains(t, state.Message, tt.wantMessage)
			assert.Nil(t, state.Result)
		})
	}
}

func TestSelectFileRejectionKeepsPreviousCandidate(t *testing.T) {
	session := newTestSession("http://localhost:8000")

	require.NoError(t, session.SelectFile("first.pdf", "", samplePDF))
	require.Error(t, session.SelectFile("second.docx", "", samplePDF))

	candidate := session.Candidate()
	require.NotNil(t, candidate)
	assert.Equal(t, "first.pdf", candidate.Name)
}

func TestSelectFileRejectsOversizeFile(t *testing.T) {
	session := NewMatchSession(
		NewUploadValidator(16, false),
		NewJobDescriptionCleaner(),
		NewMatchClient("http://localhost:8000", time.Second),
	)

	err := session.SelectFile("resume.pdf", "", samplePDF)
	require.Error(t, err)

	assert.Nil(t, session.Candidate())
	state := session.State()
	assert.Equal(t, models.PhaseFailure, state.Phase)
	assert.Contains(t, state.Message, "exceeds the maximum size")
}

func TestSubmitRequiresBothInputs(t *testing.T) {
	var requests int32
	server := scoreServer(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		fmt.Fprint(w, `{"score": 50}`)
	})

	session := newTestSession(server.URL)

	// No file selected
	state, err := session.Submit(context.Background())
	var validationErr *models.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, models.PhaseFailure, state.Phase)
	assert.Contains(t, state.Message, "no file selected")

	// File present, description still empty
	require.NoError(t, session.SelectFile("resume.pdf", "", samplePDF))
	state, err = session.Submit(context.Background())
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, models.PhaseFailure, state.Phase)
	assert.Contains(t, state.Message, "job description")

	// Neither refusal touched the network
	assert.Equal(t, int32(0), atomic.LoadInt32(&requests))
}

func TestSubmitSuccess(t *testing.T) {
	server := scoreServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"score": 91, "matched_skills": ["go"], "missing_skills": []}`)
	})

	session := newTestSession(server.URL)
	require.NoError(t, session.SelectFile("resume.pdf", "application/pdf", samplePDF))
	session.SetJobDescription("Senior Go engineer")

	state, err := session.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.PhaseSuccess, state.Phase)
	require.NotNil(t, state.Result)
	assert.Equal(t, 91.0, state.Result.Score)
	assert.Equal(t, models.TierExcellent, state.Result.Tier())
	assert.Empty(t, state.Message)
	assert.Equal(t, state, session.State())
}

func TestSubmitServerErrorBecomesFailureState(t *testing.T) {
	server := scoreServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"detail": "scoring model crashed"}`)
	})

	session := newTestSession(server.URL)
	require.NoError(t, session.SelectFile("resume.pdf", "", samplePDF))
	session.SetJobDescription("posting")

	state, err := session.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.PhaseFailure, state.Phase)
	assert.Nil(t, state.Result)
	assert.Contains(t, state.Message, "scoring model crashed")

	// Failure is recoverable: the inputs survive for a resubmission
	assert.NotNil(t, session.Candidate())
	assert.Equal(t, "posting", session.JobDescription())
}

func TestInputChangeClearsResult(t *testing.T) {
	server := scoreServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"score": 91}`)
	})

	newSuccessSession := func(t *testing.T) MatchSession {
		session := newTestSession(server.URL)
		require.NoError(t, session.SelectFile("resume.pdf", "", samplePDF))
		session.SetJobDescription("posting")
		state, err := session.Submit(context.Background())
		require.NoError(t, err)
		require.Equal(t, models.PhaseSuccess, state.Phase)
		return session
	}

	t.Run("a new valid file clears the result", func(t *testing.T) {
		session := newSuccessSession(t)

		require.NoError(t, session.SelectFile("updated.pdf", "", samplePDF))

		state := session.State()
		assert.Equal(t, models.PhaseIdle, state.Phase)
		assert.Nil(t, state.Result)
		assert.Equal(t, "updated.pdf", session.Candidate().Name)
	})

	t.Run("an edited description clears the result", func(t *testing.T) {
		session := newSuccessSession(t)

		session.SetJobDescription("a different posting")

		state := session.State()
		assert.Equal(t, models.PhaseIdle, state.Phase)
		assert.Nil(t, state.Result)
	})

	t.Run("clearing the file clears the result", func(t *testing.T) {
		session := newSuccessSession(t)

		session.ClearFile()

		assert.Nil(t, session.Candidate())
		state := session.State()
		assert.Equal(t, models.PhaseIdle, state.Phase)
		assert.Nil(t, state.Result)
	})
}

func TestSerializedSubmissionsReplaceEachOther(t *testing.T) {
	var calls int32
	server := scoreServer(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			fmt.Fprint(w, `{"score": 55}`)
			return
		}
		fmt.Fprint(w, `{"score": 95}`)
	})

	session := newTestSession(server.URL)
	require.NoError(t, session.SelectFile("resume.pdf", "", samplePDF))
	session.SetJobDescription("posting")

	first, err := session.Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, models.PhaseSuccess, first.Phase)
	assert.Equal(t, 55.0, first.Result.Score)

	second, err := session.Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, models.PhaseSuccess, second.Phase)
	assert.Equal(t, 95.0, second.Result.Score)
	assert.Greater(t, second.Generation, first.Generation)

	assert.Equal(t, 95.0, session.State().Result.Score)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestSubmitWhileLoadingIsRefused(t *testing.T) {
	arrived := make(chan struct{})
	release := make(chan struct{})
	server := scoreServer(t, func(w http.ResponseWriter, r *http.Request) {
		close(arrived)
		<-release
		fmt.Fprint(w, `{"score": 77}`)
	})

	session := newTestSession(server.URL)
	require.NoError(t, session.SelectFile("resume.pdf", "", samplePDF))
	session.SetJobDescription("posting")

	var wg sync.WaitGroup
	var firstState models.RequestState
	var firstErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		firstState, firstErr = session.Submit(context.Background())
	}()

	<-arrived

	state, err := session.Submit(context.Background())
	assert.ErrorIs(t, err, ErrRequestInFlight)
	assert.Equal(t, models.PhaseLoading, state.Phase)

	close(release)
	wg.Wait()

	require.NoError(t, firstErr)
	assert.Equal(t, models.PhaseSuccess, firstState.Phase)
	assert.Equal(t, 77.0, session.State().Result.Score)
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	arrived := make(chan struct{})
	release := make(chan struct{})
	server := scoreServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.FormValue("job_description") == "slow posting" {
			close(arrived)
			<-release
			fmt.Fprint(w, `{"score": 10}`)
			return
		}
		fmt.Fprint(w, `{"score": 91}`)
	})

	session := newTestSession(server.URL)
	require.NoError(t, session.SelectFile("resume.pdf", "", samplePDF))
	session.SetJobDescription("slow posting")

	var wg sync.WaitGroup
	var staleState models.RequestState
	wg.Add(1)
	go func() {
		defer wg.Done()
		staleState, _ = session.Submit(context.Background())
	}()

	<-arrived

	// The description changes while the first request is in flight, then a
	// second submission completes against the new inputs.
	session.SetJobDescription("fast posting")

	state, err := session.Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, models.PhaseSuccess, state.Phase)
	assert.Equal(t, 91.0, state.Result.Score)

	close(release)
	wg.Wait()

	// The slow response belongs to a superseded generation and must not
	// overwrite the newer result.
	final := session.State()
	require.Equal(t, models.PhaseSuccess, final.Phase)
	assert.Equal(t, 91.0, final.Result.Score)
	assert.Equal(t, 91.0, staleState.Result.Score)
}
