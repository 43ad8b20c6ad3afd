package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enrollku_backend/internals/configs"
)

func TestMockProviderIsDeterministic(t *testing.T) {
	req := RecognitionRequest{ObjectKey: "documents/app-1/PASSPORT/abc.webp", TypeCode: "PASSPORT"}

	first, err := MockProvider{}.Recognize(context.Background(), req)
	require.NoError(t, err)
	second, err := MockProvider{}.Recognize(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// a different object key produces a different identity
	other, err := MockProvider{}.Recognize(context.Background(), RecognitionRequest{
		ObjectKey: "documents/app-2/PASSPORT/def.webp", TypeCode: "PASSPORT",
	})
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestMockProviderTextMatchesExtractor(t *testing.T) {
	for _, typeCode := range []string{"PASSPORT", "TRANSCRIPT", "ENGLISH_TEST", "ID_CARD", "GENERIC"} {
		t.Run(typeCode, func(t *testing.T) {
			raw, err := MockProvider{}.Recognize(context.Background(), RecognitionRequest{
				ObjectKey: "documents/x/" + typeCode, TypeCode: typeCode,
			})
			require.NoError(t, err)
			result := ExtractFields(raw, typeCode)
			assert.NotEmpty(t, result.ExtractedData, "mock text for %s should yield fields", typeCode)
		})
	}
}

func newTestHTTPProvider(baseURL string, maxPolls int) *HTTPProvider {
	return &HTTPProvider{
		BaseURL:     baseURL,
		APIKey:      "test-key",
		MaxPolls:    maxPolls,
		PollBackoff: time.Millisecond,
		Client:      &http.Client{Timeout: 2 * time.Second},
	}
}

func TestHTTPProviderCompletedJob(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v1/recognize":
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			fmt.Fprint(w, `{"job_id":"job-1"}`)
		case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/v1/jobs/"):
			fmt.Fprint(w, `{"status":"completed","text":"Given Names: JOHN"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	p := newTestHTTPProvider(srv.URL, 3)
	text, err := p.Recognize(context.Background(), RecognitionRequest{ObjectKey: "k", TypeCode: "PASSPORT"})
	require.NoError(t, err)
	assert.Equal(t, "Given Names: JOHN", text)
}

func TestHTTPProviderPollBudgetExhausted(t *testing.T) {
	var polls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			fmt.Fprint(w, `{"job_id":"job-slow"}`)
			return
		}
		polls++
		fmt.Fprint(w, `{"status":"processing"}`)
	}))
	defer srv.Close()

	p := newTestHTTPProvider(srv.URL, 4)
	_, err := p.Recognize(context.Background(), RecognitionRequest{ObjectKey: "k"})
	require.Error(t, err)

	var pe *OCRProcessingError
	require.ErrorAs(t, err, &pe)
	assert.Contains(t, pe.Reason, "still processing after 4 polls")
	assert.Equal(t, 4, polls)
}

func TestHTTPProviderVendorFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			fmt.Fprint(w, `{"job_id":"job-bad"}`)
			return
		}
		fmt.Fprint(w, `{"status":"failed","error":"unreadable scan"}`)
	}))
	defer srv.Close()

	p := newTestHTTPProvider(srv.URL, 3)
	_, err := p.Recognize(context.Background(), RecognitionRequest{ObjectKey: "k"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unreadable scan")
}

func TestHTTPProviderSubmitRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	p := newTestHTTPProvider(srv.URL, 3)
	_, err := p.Recognize(context.Background(), RecognitionRequest{ObjectKey: "k"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestHTTPProviderCancelledWhilePolling(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			fmt.Fprint(w, `{"job_id":"job-1"}`)
			return
		}
		fmt.Fprint(w, `{"status":"processing"}`)
	}))
	defer srv.Close()

	// cancel while the provider is waiting out the first poll backoff
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	p := newTestHTTPProvider(srv.URL, 10)
	p.PollBackoff = 200 * time.Millisecond
	_, err := p.Recognize(ctx, RecognitionRequest{ObjectKey: "k"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cancelled while polling")
}

func TestNewProvidersStrategySelection(t *testing.T) {
	mockOnly := NewProviders(configs.Config{OCRUseMock: true, OCRBaseURL: "https://ocr.example.com"})
	assert.Equal(t, "mock", mockOnly.Primary.Name())
	assert.Nil(t, mockOnly.Fallback)

	noURL := NewProviders(configs.Config{})
	assert.Equal(t, "mock", noURL.Primary.Name())
	assert.Nil(t, noURL.Fallback)

	real := NewProviders(configs.Config{OCRBaseURL: "https://ocr.example.com", OCRMaxPolls: 5, OCRPollBackoff: 100})
	assert.Equal(t, "vendor-ocr", real.Primary.Name())
	require.NotNil(t, real.Fallback)
	assert.Equal(t, "mock", real.Fallback.Name())
}
