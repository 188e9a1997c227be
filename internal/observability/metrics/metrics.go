package metrics

import "github.com/prometheus/client_golang/prometheus"

// DispatchMetrics exposes counters/histograms for reminder dispatch runs.
type DispatchMetrics struct {
	runsTotal       *prometheus.CounterVec
	dispatchedTotal *prometheus.CounterVec
	missedTotal     prometheus.Counter
	runDuration     prometheus.Histogram
}

func NewDispatchMetrics(reg prometheus.Registerer) *DispatchMetrics {
	m := &DispatchMetrics{
		runsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinica",
			Subsystem: "dispatch",
			Name:      "runs_total",
			Help:      "Total dispatch coordinator runs",
		}, []string{"status"}),
		dispatchedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinica",
			Subsystem: "dispatch",
			Name:      "reminders_total",
			Help:      "Total reminders processed by dispatch runs",
		}, []string{"channel", "status"}),
		missedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "clinica",
			Subsystem: "dispatch",
			Name:      "reminders_missed_total",
			Help:      "Unsent reminders whose fire time fell outside the matching window",
		}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "clinica",
			Subsystem: "dispatch",
			Name:      "run_duration_seconds",
			Help:      "Duration of dispatch coordinator runs",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.runsTotal, m.dispatchedTotal, m.missedTotal, m.runDuration)
	return m
}

func (m *DispatchMetrics) ObserveRun(status string, seconds float64) {
	if m == nil {
		return
	}
	m.runsTotal.WithLabelValues(status).Inc()
	m.runDuration.Observe(seconds)
}

func (m *DispatchMetrics) ObserveReminder(channel, status string) {
	if m == nil {
		return
	}
	m.dispatchedTotal.WithLabelValues(channel, status).Inc()
}

func (m *DispatchMetrics) ObserveMissed(count int) {
	if m == nil || count <= 0 {
		return
	}
	m.missedTotal.Add(float64(count))
}

// AppointmentMetrics counts appointment state transitions by operation.
type AppointmentMetrics struct {
	transitionsTotal *prometheus.CounterVec
}

func NewAppointmentMetrics(reg prometheus.Registerer) *AppointmentMetrics {
	m := &AppointmentMetrics{
		transitionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinica",
			Subsystem: "appointments",
			Name:      "transitions_total",
			Help:      "Total appointment state transitions",
		}, []string{"operation"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.transitionsTotal)
	return m
}

func (m *AppointmentMetrics) ObserveTransition(operation string) {
	if m == nil {
		return
	}
	m.transitionsTotal.WithLabelValues(operation).Inc()
}
