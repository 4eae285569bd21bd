package services

import (
	portsrepo "github.com/SscSPs/pix_simulator/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pix_simulator/internal/core/ports/services"
	"github.com/SscSPs/pix_simulator/internal/platform/clock"
	"github.com/SscSPs/pix_simulator/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, clk clock.Clock) *portssvc.ServiceContainer {
	ledger := repos.LedgerRepo

	return &portssvc.ServiceContainer{
		Account: NewAccountService(ledger, ledger),
		Transfer: NewTransferService(ledger,
			WithTransferClock(clk),
			WithTimeoutSimulation(cfg.EnableTimeoutSimulation),
		),
		Refund: NewRefundService(ledger,
			WithRefundClock(clk),
			WithRefundWindow(cfg.RefundWindow),
		),
	}
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AccountSvcFacade = (*accountService)(nil)
	_ portssvc.TransferSvc      = (*transferService)(nil)
	_ portssvc.RefundSvc        = (*refundService)(nil)
)
