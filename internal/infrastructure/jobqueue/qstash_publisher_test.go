package jobqueue

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/kickoff-tournaments/internal/platform/logging"
	"github.com/riskibarqy/kickoff-tournaments/internal/platform/resilience"
	"github.com/stretchr/testify/require"
)

func TestQStashPublisher_EnqueueSetsHeaders(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/v2/publish/https://api.kickoff.test/v1/internal/jobs/rating-update") {
			t.Fatalf("unexpected publish path %s", r.URL.Path)
		}
		require.Equal(t, "Bearer qstash-token", r.Header.Get("Authorization"))
		require.Equal(t, "30s", r.Header.Get("Upstash-Delay"))
		require.Equal(t, "3", r.Header.Get("Upstash-Retries"))
		require.Equal(t, "rating-m1-7", r.Header.Get("Upstash-Deduplication-Id"))
		require.Equal(t, "job-secret", r.Header.Get("Upstash-Forward-X-Internal-Job-Token"))

		var body map[string]any
		require.NoError(t, jsoniter.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "m1", body["matchId"])
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	p := NewQStashPublisher(QStashPublisherConfig{
		HTTPClient:       srv.Client(),
		BaseURL:          srv.URL,
		Token:            "qstash-token",
		TargetBaseURL:    "https://api.kickoff.test/",
		Retries:          3,
		InternalJobToken: "job-secret",
	}, logging.NewNop())

	err := p.Enqueue(context.Background(), "v1/internal/jobs/rating-update", map[string]string{"matchId": "m1"}, 30*time.Second, "rating-m1-7")
	require.NoError(t, err)
}

func TestQStashPublisher_TransientFailuresOpenBreaker(t *testing.T) {
	t.Parallel()

	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p := NewQStashPublisher(QStashPublisherConfig{
		HTTPClient:     srv.Client(),
		BaseURL:        srv.URL,
		TargetBaseURL:  "https://api.kickoff.test",
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: true, FailureThreshold: 1, OpenTimeout: time.Minute, HalfOpenMaxReq: 1},
	}, logging.NewNop())

	err := p.Enqueue(context.Background(), "/jobs/x", nil, 0, "")
	require.ErrorIs(t, err, errQStashTransient)

	err = p.Enqueue(context.Background(), "/jobs/x", nil, 0, "")
	require.ErrorIs(t, err, resilience.ErrCircuitOpen)
	require.Equal(t, 1, calls)
}

func TestQStashPublisher_RejectsBadConfig(t *testing.T) {
	t.Parallel()

	p := NewQStashPublisher(QStashPublisherConfig{BaseURL: "ftp://qstash", TargetBaseURL: "https://api"}, logging.NewNop())
	require.Error(t, p.Enqueue(context.Background(), "/jobs/x", nil, 0, ""))
	require.Error(t, p.Enqueue(context.Background(), " ", nil, 0, ""))
}

func TestNormalizeDelay(t *testing.T) {
	t.Parallel()

	require.Equal(t, "0s", normalizeDelay(-time.Second))
	require.Equal(t, "0s", normalizeDelay(0))
	require.Equal(t, "2s", normalizeDelay(1600*time.Millisecond))
}
