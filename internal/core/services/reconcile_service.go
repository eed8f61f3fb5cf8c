package services

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// ReconcileService re-attempts settlement for loans stuck in APPROVED.
// The underwriting path tries settlement exactly once and never retries;
// this scheduled job is the operator-side retry the core defers to.
type ReconcileService struct {
	loans   LoanStore
	gateway PaymentGateway
	grace   time.Duration
	cron    *cron.Cron
	now     func() time.Time
}

// NewReconcileService creates a new settlement reconciler. grace is how
// long a loan may sit APPROVED before it is picked up.
func NewReconcileService(loans LoanStore, gateway PaymentGateway, grace time.Duration) *ReconcileService {
	return &ReconcileService{
		loans:   loans,
		gateway: gateway,
		grace:   grace,
		cron:    cron.New(),
		now:     time.Now,
	}
}

// Start schedules the reconciliation run with the given cron spec
func (s *ReconcileService) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, func() {
		s.Run(context.Background())
	}); err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("🚀 Settlement reconciler started [schedule: %s]", spec)
	return nil
}

// Stop stops the scheduler, waiting for a running pass to finish
func (s *ReconcileService) Stop() {
	<-s.cron.Stop().Done()
	log.Println("🛑 Settlement reconciler stopped")
}

// Run executes a single reconciliation pass and returns how many loans
// were settled.
func (s *ReconcileService) Run(ctx context.Context) int {
	cutoff := s.now().Add(-s.grace)

	loans, err := s.loans.ListApprovedBefore(ctx, cutoff)
	if err != nil {
		log.Printf("❌ Reconciler query error: %v", err)
		return 0
	}
	if len(loans) == 0 {
		return 0
	}

	log.Printf("🔄 Reconciling %d unsettled loan(s)", len(loans))

	settled := 0
	for _, loan := range loans {
		result, err := s.gateway.Settle(ctx, SettlementRequest{
			Amount:     loan.RequestedAmount,
			EmployeeID: loan.EmployeeID,
			LoanID:     loan.ID,
		})
		if err != nil {
			log.Printf("❌ Reconciler settlement error for loan %s: %v", loan.ID, err)
			continue
		}
		if !result.Success {
			log.Printf("⚠️ Loan %s still unsettled: %s", loan.ID, result.Status)
			continue
		}

		if err := s.loans.MarkPaid(ctx, loan.ID, s.now()); err != nil {
			log.Printf("❌ Failed to mark loan %s as paid: %v", loan.ID, err)
			continue
		}
		settled++
		log.Printf("✅ Loan %s settled by reconciler", loan.ID)
	}

	return settled
}
