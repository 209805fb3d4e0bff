package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Счётчики операций платёжного ядра. Лейбл result: ok, not_found,
// invalid_input, insufficient_funds, cap_exceeded, internal_error.
var (
	PaymentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bedeel_payments_total",
		Help: "Итоги вызовов оплаты работ.",
	}, []string{"result"})

	DepositsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bedeel_deposits_total",
		Help: "Итоги вызовов пополнения баланса.",
	}, []string{"result"})
)
