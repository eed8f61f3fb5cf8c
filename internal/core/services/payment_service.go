package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"sync"
	"time"
)

const (
	// settleTimeout bounds the external settlement call
	settleTimeout = 30 * time.Second

	// pingTimeout bounds the gateway availability probe
	pingTimeout = 5 * time.Second
)

// ============================================================
// Remote payment gateway
// ============================================================

// PaymentService settles loan disbursements against the remote gateway
type PaymentService struct {
	apiURL     string
	httpClient *http.Client
}

// NewPaymentService creates a new payment service
func NewPaymentService(apiURL string) *PaymentService {
	return &PaymentService{
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: settleTimeout},
	}
}

type gatewayResponse struct {
	Status string `json:"status"`
}

// Settle sends a settlement request to the gateway. A transport failure
// is reported as an error-status result, not a hard error: the caller's
// loan stays APPROVED and a reconciliation pass can retry later.
func (s *PaymentService) Settle(ctx context.Context, req SettlementRequest) (*SettlementResult, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		log.Printf("⚠️ Payment gateway unreachable for loan %s: %v", req.LoanID, err)
		return &SettlementResult{
			Success: false,
			Status:  SettlementError,
			Message: "payment service temporarily unavailable",
		}, nil
	}
	defer resp.Body.Close()

	var body gatewayResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		log.Printf("⚠️ Payment gateway returned malformed response for loan %s: %v", req.LoanID, err)
		return &SettlementResult{
			Success: false,
			Status:  SettlementError,
			Message: "payment service temporarily unavailable",
		}, nil
	}

	return resultFromStatus(body.Status), nil
}

// Ping probes gateway availability
func (s *PaymentService) Ping(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.apiURL, nil)
	if err != nil {
		return false
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.Printf("⚠️ Payment gateway unavailable: %v", err)
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}

func resultFromStatus(status string) *SettlementResult {
	switch status {
	case SettlementApproved:
		return &SettlementResult{
			Success: true,
			Status:  SettlementApproved,
			Message: "payment processed successfully",
		}
	case SettlementRejected:
		return &SettlementResult{
			Success: false,
			Status:  SettlementRejected,
			Message: "payment rejected by gateway",
		}
	default:
		return &SettlementResult{
			Success: false,
			Status:  SettlementTemporaryError,
			Message: fmt.Sprintf("gateway reported status %q", status),
		}
	}
}

// ============================================================
// Local gateway simulator
// ============================================================

// SimulatedPaymentGateway mimics the gateway locally with the observed
// outcome distribution: 90% approved, 5% rejected, 5% temporary error.
// Outcomes are sampled independently per call; retrying does not change
// the odds.
type SimulatedPaymentGateway struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulatedPaymentGateway creates a simulator with a time-based seed
func NewSimulatedPaymentGateway() *SimulatedPaymentGateway {
	return NewSimulatedPaymentGatewayWithSeed(time.Now().UnixNano())
}

// NewSimulatedPaymentGatewayWithSeed creates a simulator with a fixed seed
func NewSimulatedPaymentGatewayWithSeed(seed int64) *SimulatedPaymentGateway {
	return &SimulatedPaymentGateway{rng: rand.New(rand.NewSource(seed))}
}

// Settle samples a settlement outcome
func (s *SimulatedPaymentGateway) Settle(ctx context.Context, req SettlementRequest) (*SettlementResult, error) {
	s.mu.Lock()
	sample := s.rng.Float64()
	s.mu.Unlock()

	switch {
	case sample < 0.05:
		return resultFromStatus(SettlementTemporaryError), nil
	case sample < 0.10:
		return resultFromStatus(SettlementRejected), nil
	default:
		return resultFromStatus(SettlementApproved), nil
	}
}
