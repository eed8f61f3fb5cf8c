package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func settlementRequest() SettlementRequest {
	return SettlementRequest{
		Amount:     decimal.NewFromInt(1000),
		EmployeeID: "emp-1",
		LoanID:     "loan-1",
	}
}

func TestPaymentService_Settle_Approved(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req SettlementRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "loan-1", req.LoanID)

		w.Write([]byte(`{"status": "approved"}`))
	}))
	defer server.Close()

	service := NewPaymentService(server.URL)
	result, err := service.Settle(context.Background(), settlementRequest())

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, SettlementApproved, result.Status)
}

func TestPaymentService_Settle_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "rejected"}`))
	}))
	defer server.Close()

	service := NewPaymentService(server.URL)
	result, err := service.Settle(context.Background(), settlementRequest())

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, SettlementRejected, result.Status)
}

func TestPaymentService_Settle_TemporaryError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "temporary_error"}`))
	}))
	defer server.Close()

	service := NewPaymentService(server.URL)
	result, err := service.Settle(context.Background(), settlementRequest())

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, SettlementTemporaryError, result.Status)
}

func TestPaymentService_Settle_Unreachable_ReturnsErrorResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	service := NewPaymentService(server.URL)
	result, err := service.Settle(context.Background(), settlementRequest())

	// unreachable is an outcome, not a hard error
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, SettlementError, result.Status)
}

func TestPaymentService_Ping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	service := NewPaymentService(server.URL)
	assert.True(t, service.Ping(context.Background()))

	server.Close()
	assert.False(t, service.Ping(context.Background()))
}

func TestSimulatedPaymentGateway_Distribution(t *testing.T) {
	gateway := NewSimulatedPaymentGatewayWithSeed(42)

	counts := map[string]int{}
	const draws = 10000
	for i := 0; i < draws; i++ {
		result, err := gateway.Settle(context.Background(), settlementRequest())
		require.NoError(t, err)

		switch result.Status {
		case SettlementApproved:
			assert.True(t, result.Success)
		case SettlementRejected, SettlementTemporaryError:
			assert.False(t, result.Success)
		default:
			t.Fatalf("unexpected status %q", result.Status)
		}
		counts[result.Status]++
	}

	assert.InDelta(t, 0.90, float64(counts[SettlementApproved])/draws, 0.02)
	assert.InDelta(t, 0.05, float64(counts[SettlementRejected])/draws, 0.02)
	assert.InDelta(t, 0.05, float64(counts[SettlementTemporaryError])/draws, 0.02)
}

func TestSimulatedPaymentGateway_SameSeedSameOutcomes(t *testing.T) {
	first := NewSimulatedPaymentGatewayWithSeed(7)
	second := NewSimulatedPaymentGatewayWithSeed(7)

	for i := 0; i < 100; i++ {
		a, err := first.Settle(context.Background(), settlementRequest())
		require.NoError(t, err)
		b, err := second.Settle(context.Background(), settlementRequest())
		require.NoError(t, err)
		assert.Equal(t, a.Status, b.Status)
	}
}
