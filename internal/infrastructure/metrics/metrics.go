package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/iho/splitnest/internal/domain"
)

// Store operation statuses.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Ledger metrics
	ExpensesAdded  *prometheus.CounterVec
	ExpenseAmount  *prometheus.HistogramVec
	LedgerResets   prometheus.Counter
	PublishFailure *prometheus.CounterVec

	// Store metrics
	StoreOperations *prometheus.CounterVec
	StoreDuration   *prometheus.HistogramVec

	// Authentication metrics
	AuthAttempts *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics with the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates the metrics and registers them with reg.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		// Ledger metrics
		ExpensesAdded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "splitnest_expenses_added_total",
				Help: "Total number of expenses added by category",
			},
			[]string{"category"},
		),
		ExpenseAmount: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "splitnest_expense_amount",
				Help:    "Expense amounts by category",
				Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 5000},
			},
			[]string{"category"},
		),
		LedgerResets: factory.NewCounter(prometheus.CounterOpts{
			Name: "splitnest_ledger_resets_total",
			Help: "Total number of ledger resets",
		}),
		PublishFailure: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "splitnest_event_publish_failures_total",
				Help: "Total ledger events that could not be published",
			},
			[]string{"event_type"},
		),

		// Store metrics
		StoreOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "splitnest_store_operations_total",
				Help: "Total ledger store operations",
			},
			[]string{"backend", "operation", "status"},
		),
		StoreDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "splitnest_store_operation_duration_seconds",
				Help:    "Ledger store operation duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"backend", "operation"},
		),

		// Authentication metrics
		AuthAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "splitnest_auth_attempts_total",
				Help: "Total authentication attempts by result",
			},
			[]string{"result"},
		),
	}
}

// ExpenseAdded implements usecase.MetricsRecorder.
func (m *Metrics) ExpenseAdded(category domain.Category, amount float64) {
	m.ExpensesAdded.WithLabelValues(string(category)).Inc()
	m.ExpenseAmount.WithLabelValues(string(category)).Observe(amount)
}

// LedgerReset implements usecase.MetricsRecorder.
func (m *Metrics) LedgerReset() {
	m.LedgerResets.Inc()
}

// EventPublishFailed implements usecase.MetricsRecorder.
func (m *Metrics) EventPublishFailed(eventType string) {
	m.PublishFailure.WithLabelValues(eventType).Inc()
}

// AuthAttempt implements usecase.MetricsRecorder.
func (m *Metrics) AuthAttempt(result string) {
	m.AuthAttempts.WithLabelValues(result).Inc()
}

// StoreOperation records one store call.
func (m *Metrics) StoreOperation(backend, operation string, err error, elapsed time.Duration) {
	status := StatusOK
	if err != nil {
		status = StatusError
	}
	m.StoreOperations.WithLabelValues(backend, operation, status).Inc()
	m.StoreDuration.WithLabelValues(backend, operation).Observe(elapsed.Seconds())
}
