package exporter

import (
	"github.com/prometheus/client_golang/prometheus"

	"storyctl/pkg/types"
)

var (
	daemonUp = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "storyctl",
		Subsystem: "ollama",
		Name:      "daemon_up",
		Help:      "Whether the Ollama daemon unit is active (1) or not (0)",
	})

	bootEnabled = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "storyctl",
		Subsystem: "ollama",
		Name:      "boot_enabled",
		Help:      "Whether the daemon unit is enabled at boot",
	})

	firewallOpen = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "storyctl",
		Subsystem: "ollama",
		Name:      "firewall_open",
		Help:      "Whether an allow rule for the daemon port is present",
	})

	probeOK = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "storyctl",
		Subsystem: "ollama",
		Name:      "probe_ok",
		Help:      "Whether the last liveness probe succeeded (0 when skipped)",
	})

	probeFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "storyctl",
		Subsystem: "ollama",
		Name:      "probe_failures_total",
		Help:      "Total liveness probe failures observed by the exporter",
	})

	statusErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "storyctl",
		Subsystem: "ollama",
		Name:      "status_errors_total",
		Help:      "Total failed status refreshes",
	})
)

func init() {
	prometheus.MustRegister(daemonUp, bootEnabled, firewallOpen, probeOK, probeFailures, statusErrors)
}

func b2f(v bool) float64 {
	if v {
		return 1
	}
	return 0
}

func recordStatus(st types.ServiceStatus) {
	daemonUp.Set(b2f(st.Running))
	bootEnabled.Set(b2f(st.BootEnabled))
	firewallOpen.Set(b2f(st.FirewallOpen))
	probeOK.Set(b2f(st.ProbeAttempted && st.ProbeOK))
	if st.ProbeAttempted && !st.ProbeOK {
		probeFailures.Inc()
	}
}
