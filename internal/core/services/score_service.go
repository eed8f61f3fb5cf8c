package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// DefaultScore is returned whenever the score provider cannot be
	// consulted. It sits below every policy threshold, so an outage
	// rejects new credit instead of approving it blindly.
	DefaultScore = 300

	// scoreTimeout bounds the external score lookup
	scoreTimeout = 10 * time.Second
)

// ScoreService fetches credit scores from the external bureau API
type ScoreService struct {
	apiURL     string
	httpClient *http.Client
	cache      ScoreCache
}

// NewScoreService creates a new score service. cache may be nil.
func NewScoreService(apiURL string, cache ScoreCache) *ScoreService {
	return &ScoreService{
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: scoreTimeout},
		cache:      cache,
	}
}

type scoreResponse struct {
	Score int `json:"score"`
}

// FetchScore looks up the credit score for a CPF. Any failure (timeout,
// transport error, non-200, malformed body) degrades to DefaultScore and
// is only logged, never surfaced. Successful lookups are cached so a
// quote and the loan request that follows it see the same score.
func (s *ScoreService) FetchScore(ctx context.Context, cpf string) int {
	if s.cache != nil {
		if score, ok := s.cache.Get(ctx, cpf); ok {
			return score
		}
	}

	score, err := s.lookup(ctx, cpf)
	if err != nil {
		log.Printf("⚠️ Score lookup failed for CPF %s***: %v (using default %d)", maskCPF(cpf), err, DefaultScore)
		return DefaultScore
	}

	log.Printf("✅ Score consulted for CPF %s***: %d", maskCPF(cpf), score)
	if s.cache != nil {
		s.cache.Set(ctx, cpf, score)
	}
	return score
}

func (s *ScoreService) lookup(ctx context.Context, cpf string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.apiURL, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("score API returned status %d", resp.StatusCode)
	}

	var body scoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("malformed score response: %w", err)
	}

	return body.Score, nil
}

func maskCPF(cpf string) string {
	if len(cpf) < 3 {
		return "***"
	}
	return cpf[:3]
}

// ============================================================
// Redis-backed score cache
// ============================================================

// RedisScoreCache caches scores in Redis with a TTL. Lookups within the
// TTL window are deterministic per CPF, which keeps repeated quotes
// idempotent.
type RedisScoreCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisScoreCache creates a Redis score cache
func NewRedisScoreCache(addr, password string, ttl time.Duration) *RedisScoreCache {
	return &RedisScoreCache{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
		ttl: ttl,
	}
}

func scoreKey(cpf string) string {
	return "score:" + cpf
}

// Get returns a cached score for a CPF
func (c *RedisScoreCache) Get(ctx context.Context, cpf string) (int, bool) {
	val, err := c.client.Get(ctx, scoreKey(cpf)).Result()
	if err != nil {
		return 0, false
	}
	score, err := strconv.Atoi(val)
	if err != nil {
		return 0, false
	}
	return score, true
}

// Set caches a score for a CPF; errors are ignored
func (c *RedisScoreCache) Set(ctx context.Context, cpf string, score int) {
	if err := c.client.Set(ctx, scoreKey(cpf), strconv.Itoa(score), c.ttl).Err(); err != nil {
		log.Printf("⚠️ Score cache write failed: %v", err)
	}
}
