package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the institution directory.
// Tracks sign-ups, review decisions and promotions.
type Metrics struct {
	InstitutionsRegistered prometheus.Counter
	ReviewDecisions        *prometheus.CounterVec
	Promotions             prometheus.Counter
	RegisterDuration       prometheus.Histogram
}

// New creates a Metrics instance with every collector registered on reg.
// Pass prometheus.DefaultRegisterer to expose them on /metrics.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		InstitutionsRegistered: factory.NewCounter(prometheus.CounterOpts{
			Name: "institutions_registered_total",
			Help: "Total number of institutions registered",
		}),
		ReviewDecisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "institution_reviews_total",
			Help: "Total number of review decisions by resulting status",
		}, []string{"status"}),
		Promotions: factory.NewCounter(prometheus.CounterOpts{
			Name: "institution_promotions_total",
			Help: "Total number of institutions promoted to admin",
		}),
		RegisterDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "institution_register_duration_seconds",
			Help:    "Duration of RegisterInstitution operations",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
}

// IncrementRegistered records a successful sign-up.
func (m *Metrics) IncrementRegistered() {
	if m == nil {
		return
	}
	m.InstitutionsRegistered.Inc()
}

// IncrementReview records a persisted review decision.
func (m *Metrics) IncrementReview(status string) {
	if m == nil {
		return
	}
	m.ReviewDecisions.WithLabelValues(status).Inc()
}

// IncrementPromotion records a successful promotion.
func (m *Metrics) IncrementPromotion() {
	if m == nil {
		return
	}
	m.Promotions.Inc()
}

// ObserveRegister records the duration of a RegisterInstitution call.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveRegister(start time.Time) {
	if m == nil {
		return
	}
	m.RegisterDuration.Observe(time.Since(start).Seconds())
}
