package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics exposes counters/histograms for the practice platform.
type Metrics struct {
	bookingsCreated   prometheus.Counter
	contactsTriaged   *prometheus.CounterVec
	calendarSyncDays  *prometheus.CounterVec
	calendarSyncTime  prometheus.Histogram
	assistantRequests *prometheus.CounterVec
	emailsSent        *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		bookingsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "practice",
			Subsystem: "bookings",
			Name:      "created_total",
			Help:      "Total bookings created",
		}),
		contactsTriaged: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "practice",
			Subsystem: "triage",
			Name:      "contacts_total",
			Help:      "Total contact messages triaged",
		}, []string{"tier", "escalated"}),
		calendarSyncDays: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "practice",
			Subsystem: "calendar",
			Name:      "sync_days_total",
			Help:      "Per-day availability sync outcomes",
		}, []string{"status"}),
		calendarSyncTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "practice",
			Subsystem: "calendar",
			Name:      "sync_duration_seconds",
			Help:      "Duration of availability range syncs",
			Buckets:   prometheus.DefBuckets,
		}),
		assistantRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "practice",
			Subsystem: "assistant",
			Name:      "requests_total",
			Help:      "Total assistant chat requests",
		}, []string{"provider", "status"}),
		emailsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "practice",
			Subsystem: "notify",
			Name:      "emails_total",
			Help:      "Total notification emails attempted",
		}, []string{"kind", "status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(
		m.bookingsCreated,
		m.contactsTriaged,
		m.calendarSyncDays,
		m.calendarSyncTime,
		m.assistantRequests,
		m.emailsSent,
	)
	return m
}

func (m *Metrics) ObserveBookingCreated() {
	if m == nil {
		return
	}
	m.bookingsCreated.Inc()
}

func (m *Metrics) ObserveContactTriaged(tier string, escalated bool) {
	if m == nil {
		return
	}
	label := "false"
	if escalated {
		label = "true"
	}
	m.contactsTriaged.WithLabelValues(tier, label).Inc()
}

func (m *Metrics) ObserveSyncDay(status string) {
	if m == nil {
		return
	}
	m.calendarSyncDays.WithLabelValues(status).Inc()
}

func (m *Metrics) ObserveSyncDuration(seconds float64) {
	if m == nil {
		return
	}
	m.calendarSyncTime.Observe(seconds)
}

func (m *Metrics) ObserveAssistantRequest(provider, status string) {
	if m == nil {
		return
	}
	m.assistantRequests.WithLabelValues(provider, status).Inc()
}

func (m *Metrics) ObserveEmail(kind, status string) {
	if m == nil {
		return
	}
	m.emailsSent.WithLabelValues(kind, status).Inc()
}
