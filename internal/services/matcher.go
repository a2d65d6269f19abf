package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"
	"unicode/utf8"

	"resumatch/internal/models"
)

// matchEndpointPath is fixed by the scoring service; only the origin varies
// per deployment.
const matchEndpointPath = "/api/calculate-match"

// maxResponseBytes caps how much of an upstream body is read. Match results
// are small; anything larger is not a result.
const maxResponseBytes = 1 << 20

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

type MatchClient interface {
	CalculateMatch(ctx context.Context, candidate *models.UploadCandidate, jobDescription string) (*models.MatchResult, error)
}

type matchClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewMatchClient(baseURL string, timeout time.Duration) MatchClient {
	return &matchClient{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// CalculateMatch performs the single round trip to the scoring service:
// multipart POST with the resume bytes and the job description, JSON
// MatchResult back. Every failure is a *models.TransportError; there are no
// retries.
func (c *matchClient) CalculateMatch(ctx context.Context, candidate *models.UploadCandidate, jobDescription string) (*models.MatchResult, error) {
	body, contentType, err := encodeMatchRequest(candidate, jobDescription)
	if err != nil {
		return nil, models.NewTransportError(0, fmt.Sprintf("failed to encode request: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+matchEndpointPath, body)
	if err != nil {
		return nil, models.NewTransportError(0, fmt.Sprintf("failed to build request: %v", err))
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, models.NewTransportError(0, fmt.Sprintf("could not reach the scoring service: %v", err))
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, models.NewTransportError(resp.StatusCode, fmt.Sprintf("failed to read response: %v", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, models.NewTransportError(resp.StatusCode, upstreamErrorMessage(resp.StatusCode, payload))
	}

	// A success body without a score is not a result
	var probe struct {
		Score *float64 `json:"score"`
	}
	if err := json.Unmarshal(payload, &probe); err != nil {
		return nil, models.NewTransportError(resp.StatusCode, "scoring service returned a malformed response")
	}
	if probe.Score == nil {
		return nil, models.NewTransportError(resp.StatusCode, "scoring service response is missing a score")
	}

	var result models.MatchResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, models.NewTransportError(resp.StatusCode, "scoring service returned a malformed response")
	}

	return &result, nil
}

// encodeMatchRequest builds the multipart body the scoring service expects:
// a "file" part carrying the PDF and a "job_description" field.
func encodeMatchRequest(candidate *models.UploadCandidate, jobDescription string) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	// CreateFormFile would declare application/octet-stream; the service
	// checks for application/pdf, so build the part header by hand.
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(candidate.Name)))
	header.Set("Content-Type", candidate.MediaType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := part.Write(candidate.Data); err != nil {
		return nil, "", fmt.Errorf("failed to write file part: %w", err)
	}

	if err := writer.WriteField("job_description", jobDescription); err != nil {
		return nil, "", fmt.Errorf("failed to write job description field: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	return &buf, writer.FormDataContentType(), nil
}

// upstreamErrorMessage digs a human-readable message out of a failure body.
// The scoring service reports {"detail": "..."}; older deployments used
// {"error": "..."}; anything else is surfaced raw, truncated.
func upstreamErrorMessage(statusCode int, body []byte) string {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err == nil {
		if detail, ok := payload["detail"].(string); ok && detail != "" {
			return detail
		}
		if msg, ok := payload["error"].(string); ok && msg != "" {
			return msg
		}
	}

	raw := strings.TrimSpace(string(body))
	if raw == "" {
		return http.StatusText(statusCode)
	}
	if len(raw) > 200 {
		// Back up to a rune start so the cut never splits a character
		cut := 200
		for cut > 0 && !utf8.RuneStart(raw[cut]) {
			cut--
		}
		raw = raw[:cut] + "..."
	}
	return raw
}
