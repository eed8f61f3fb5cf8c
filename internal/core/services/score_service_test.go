package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type memoryScoreCache struct {
	scores map[string]int
	sets   int
}

func newMemoryScoreCache() *memoryScoreCache {
	return &memoryScoreCache{scores: make(map[string]int)}
}

func (c *memoryScoreCache) Get(ctx context.Context, cpf string) (int, bool) {
	score, ok := c.scores[cpf]
	return score, ok
}

func (c *memoryScoreCache) Set(ctx context.Context, cpf string, score int) {
	c.scores[cpf] = score
	c.sets++
}

func TestFetchScore_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"score": 720}`))
	}))
	defer server.Close()

	service := NewScoreService(server.URL, nil)
	assert.Equal(t, 720, service.FetchScore(context.Background(), "98765432100"))
}

func TestFetchScore_ServerError_DefaultsTo300(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	service := NewScoreService(server.URL, nil)
	assert.Equal(t, DefaultScore, service.FetchScore(context.Background(), "98765432100"))
}

func TestFetchScore_MalformedBody_DefaultsTo300(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	service := NewScoreService(server.URL, nil)
	assert.Equal(t, DefaultScore, service.FetchScore(context.Background(), "98765432100"))
}

func TestFetchScore_Unreachable_DefaultsTo300(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	service := NewScoreService(server.URL, nil)
	assert.Equal(t, DefaultScore, service.FetchScore(context.Background(), "98765432100"))
}

func TestFetchScore_CachesSuccessfulLookups(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"score": 650}`))
	}))
	defer server.Close()

	cache := newMemoryScoreCache()
	service := NewScoreService(server.URL, cache)

	assert.Equal(t, 650, service.FetchScore(context.Background(), "98765432100"))
	assert.Equal(t, 650, service.FetchScore(context.Background(), "98765432100"))

	assert.Equal(t, 1, calls, "second lookup must hit the cache")
	assert.Equal(t, 1, cache.sets)
}

func TestFetchScore_DoesNotCacheDefault(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	cache := newMemoryScoreCache()
	service := NewScoreService(server.URL, cache)

	assert.Equal(t, DefaultScore, service.FetchScore(context.Background(), "98765432100"))
	assert.Equal(t, 0, cache.sets, "failed lookups must not poison the cache")
}

func TestMaskCPF(t *testing.T) {
	assert.Equal(t, "987", maskCPF("98765432100"))
	assert.Equal(t, "***", maskCPF("12"))
}
