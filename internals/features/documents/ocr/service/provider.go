// internals/features/documents/ocr/service/provider.go
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"io"
	"net/http"
	"time"

	"enrollku_backend/internals/configs"
)

// OCRProcessingError is fatal for one document only: the recognition call
// failed and the fallback path could not produce a result either.
type OCRProcessingError struct {
	Reason string
}

func (e *OCRProcessingError) Error() string {
	return "ocr processing failed: " + e.Reason
}

// RecognitionRequest identifies one stored document to recognize.
type RecognitionRequest struct {
	ObjectKey string
	TypeCode  string
	ModelRef  string
}

// RecognitionProvider turns a stored document into raw line-structured
// text. Two strategies exist — the real vendor and the deterministic mock —
// selected explicitly by configuration, never by silent fallthrough.
type RecognitionProvider interface {
	Name() string
	Recognize(ctx context.Context, req RecognitionRequest) (string, error)
}

/* =========================================================
   Real provider — submit, poll with bounded backoff, fetch
   ========================================================= */

type HTTPProvider struct {
	BaseURL     string
	APIKey      string
	MaxPolls    int
	PollBackoff time.Duration
	Client      *http.Client
}

func NewHTTPProvider(cfg configs.Config) *HTTPProvider {
	return &HTTPProvider{
		BaseURL:     cfg.OCRBaseURL,
		APIKey:      cfg.OCRAPIKey,
		MaxPolls:    cfg.OCRMaxPolls,
		PollBackoff: time.Duration(cfg.OCRPollBackoff) * time.Millisecond,
		Client:      &http.Client{Timeout: 30 * time.Second},
	}
}

func (p *HTTPProvider) Name() string { return "vendor-ocr" }

type submitResponse struct {
	JobID string `json:"job_id"`
}

type jobResponse struct {
	Status string `json:"status"` // processing | completed | failed
	Text   string `json:"text"`
	Error  string `json:"error"`
}

// Recognize submits the job, then polls the vendor's job endpoint with a
// doubling backoff until completion or the poll budget runs out.
func (p *HTTPProvider) Recognize(ctx context.Context, req RecognitionRequest) (string, error) {
	jobID, err := p.submit(ctx, req)
	if err != nil {
		return "", err
	}

	backoff := p.PollBackoff
	for i := 0; i < p.MaxPolls; i++ {
		select {
		case <-ctx.Done():
			return "", &OCRProcessingError{Reason: "cancelled while polling"}
		case <-time.After(backoff):
		}
		backoff *= 2

		job, err := p.poll(ctx, jobID)
		if err != nil {
			return "", err
		}
		switch job.Status {
		case "completed":
			return job.Text, nil
		case "failed":
			return "", &OCRProcessingError{Reason: "vendor reported failure: " + job.Error}
		}
		// still processing, keep polling
	}
	return "", &OCRProcessingError{Reason: fmt.Sprintf("job %s still processing after %d polls", jobID, p.MaxPolls)}
}

func (p *HTTPProvider) submit(ctx context.Context, req RecognitionRequest) (string, error) {
	body, _ := json.Marshal(map[string]string{
		"source_key": req.ObjectKey,
		"model_ref":  req.ModelRef,
	})
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+"/v1/recognize", bytes.NewReader(body))
	if err != nil {
		return "", &OCRProcessingError{Reason: err.Error()}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.APIKey)

	resp, err := p.Client.Do(httpReq)
	if err != nil {
		return "", &OCRProcessingError{Reason: "submit: " + err.Error()}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return "", &OCRProcessingError{Reason: fmt.Sprintf("submit: vendor returned %d", resp.StatusCode)}
	}

	var sr submitResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&sr); err != nil || sr.JobID == "" {
		return "", &OCRProcessingError{Reason: "submit: malformed vendor response"}
	}
	return sr.JobID, nil
}

func (p *HTTPProvider) poll(ctx context.Context, jobID string) (*jobResponse, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+"/v1/jobs/"+jobID, nil)
	if err != nil {
		return nil, &OCRProcessingError{Reason: err.Error()}
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.APIKey)

	resp, err := p.Client.Do(httpReq)
	if err != nil {
		return nil, &OCRProcessingError{Reason: "poll: " + err.Error()}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &OCRProcessingError{Reason: fmt.Sprintf("poll: vendor returned %d", resp.StatusCode)}
	}

	var jr jobResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4<<20)).Decode(&jr); err != nil {
		return nil, &OCRProcessingError{Reason: "poll: malformed vendor response"}
	}
	return &jr, nil
}

/* =========================================================
   Deterministic mock — seeded by a stable hash of the input
   identity so repeated calls reproduce the same text
   ========================================================= */

type MockProvider struct{}

func (MockProvider) Name() string { return "mock" }

func (MockProvider) Recognize(_ context.Context, req RecognitionRequest) (string, error) {
	seed := stableHash(req.ObjectKey + "|" + req.TypeCode)
	return mockText(req.TypeCode, seed), nil
}

func stableHash(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

var mockGivenNames = []string{"JOHN", "PRIYA", "WEI", "MARIA", "AHMED", "LINH"}
var mockFamilyNames = []string{"SMITH", "SHARMA", "CHEN", "GARCIA", "HASSAN", "NGUYEN"}

func mockText(typeCode string, seed uint64) string {
	given := mockGivenNames[seed%uint64(len(mockGivenNames))]
	family := mockFamilyNames[(seed>>8)%uint64(len(mockFamilyNames))]
	number := fmt.Sprintf("N%07d", seed%10000000)

	switch typeCode {
	case "PASSPORT":
		return fmt.Sprintf(
			"PASSPORT\nGiven Names: %s\nSurname: %s\nPassport No: %s\nNationality: AUSTRALIAN\nDate of Birth: 12 MAR 2001\nDate of Expiry: 12 MAR 2031",
			given, family, number)
	case "TRANSCRIPT":
		return fmt.Sprintf(
			"ACADEMIC TRANSCRIPT\nStudent Name: %s %s\nInstitution: Springfield Senior College\nQualification: Senior Secondary Certificate\nYear Completed: 2019\nGPA: 3.4",
			given, family)
	case "ENGLISH_TEST":
		return fmt.Sprintf(
			"IELTS Test Report Form\nCandidate Name: %s %s\nOverall Band Score: 6.5\nTest Date: 2023-08-14",
			given, family)
	case "ID_CARD":
		return fmt.Sprintf(
			"NATIONAL ID CARD\nGiven Name: %s\nFamily Name: %s\nID Number: %s\nDate of Birth: 2001-03-12",
			given, family, number)
	default:
		return fmt.Sprintf("Name: %s %s\nReference Number: %s\nDate: 2024-01-15", given, family, number)
	}
}

/* =========================================================
   Strategy selection
   ========================================================= */

// Providers holds the configured strategy pair. Fallback degrades a failed
// primary call to a reproducible result; it is nil only when the mock IS
// the primary.
type Providers struct {
	Primary  RecognitionProvider
	Fallback RecognitionProvider
}

// NewProviders selects strategies from configuration.
func NewProviders(cfg configs.Config) Providers {
	if cfg.OCRUseMock || cfg.OCRBaseURL == "" {
		return Providers{Primary: MockProvider{}}
	}
	return Providers{Primary: NewHTTPProvider(cfg), Fallback: MockProvider{}}
}
