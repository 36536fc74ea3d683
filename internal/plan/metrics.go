package plan

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/imamik/kubelab/internal/config"
	"github.com/imamik/kubelab/internal/validation"
)

// Compilation results.
const (
	ResultSuccess = "success"
	ResultInvalid = "invalid"
	ResultFailed  = "failed"
)

type metrics struct {
	compilations *prometheus.CounterVec
	findings     *prometheus.CounterVec
	vmsGenerated *prometheus.CounterVec
	duration     prometheus.Histogram
}

func newMetrics() *metrics {
	return &metrics{
		compilations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "kubelab",
				Name:      "compilations_total",
				Help:      "Total number of compilations by result",
			},
			[]string{"result"},
		),
		findings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "kubelab",
				Name:      "validation_findings_total",
				Help:      "Total number of validation findings by severity and level",
			},
			[]string{"severity", "level"},
		),
		vmsGenerated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "kubelab",
				Name:      "vms_generated_total",
				Help:      "Total number of VMs in successful plans by role",
			},
			[]string{"role"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "kubelab",
				Name:      "compile_duration_seconds",
				Help:      "Duration of a compilation in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8), // 100us to ~1.6s
			},
		),
	}
}

func (m *metrics) register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.compilations, m.findings, m.vmsGenerated, m.duration} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (m *metrics) observeFindings(res validation.Result) {
	for _, e := range res.All() {
		m.findings.WithLabelValues(e.Severity.String(), e.Level.String()).Inc()
	}
}

func (m *metrics) observeResult(result string, seconds float64) {
	m.compilations.WithLabelValues(result).Inc()
	m.duration.Observe(seconds)
}

func (m *metrics) observeVMs(vms []config.VMConfig) {
	for _, vm := range vms {
		m.vmsGenerated.WithLabelValues(vm.Role.Tag()).Inc()
	}
}
