package services

import (
	"github.com/SscSPs/pix_simulator/internal/apperrors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

const resultSuccess = "success"

var (
	pixOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pix_operations_total",
		Help: "Pix operations processed, labeled by operation and result code",
	}, []string{"operation", "result"})

	pixTransferredAmount = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pix_transferred_amount",
		Help:    "Amounts moved by completed Pix operations",
		Buckets: []float64{1, 10, 50, 100, 500, 1000, 5000, 10000},
	}, []string{"operation"})
)

func observeOperation(operation string, amount decimal.Decimal, err error) {
	if err != nil {
		pixOperationsTotal.WithLabelValues(operation, string(apperrors.CodeOf(err))).Inc()
		return
	}
	pixOperationsTotal.WithLabelValues(operation, resultSuccess).Inc()
	pixTransferredAmount.WithLabelValues(operation).Observe(amount.InexactFloat64())
}
