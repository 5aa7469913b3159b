package statistics

import (
	"github.com/costumeworks/suitfan/internal/power"
	"github.com/prometheus/client_golang/prometheus"
)

const powerSubsystem = "power"

type PowerCollector struct {
	monitor power.Monitor

	sufficient   *prometheus.Desc
	levelChanges *prometheus.Desc
}

func NewPowerCollector(m power.Monitor) *PowerCollector {
	return &PowerCollector{
		monitor: m,
		sufficient: prometheus.NewDesc(prometheus.BuildFQName(namespace, powerSubsystem, "sufficient"),
			"Whether the advertised supply power is sufficient for the loads",
			nil, nil,
		),
		levelChanges: prometheus.NewDesc(prometheus.BuildFQName(namespace, powerSubsystem, "level_changes_total"),
			"Counter for power level changes reported to the controller",
			nil, nil,
		),
	}
}

func (collector *PowerCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.sufficient
	ch <- collector.levelChanges
}

// Collect implements required collect function for all prometheus collectors
func (collector *PowerCollector) Collect(ch chan<- prometheus.Metric) {
	level, reported := collector.monitor.LastLevel()

	ch <- prometheus.MustNewConstMetric(collector.sufficient, prometheus.GaugeValue, boolToFloat(reported && level == power.LevelSufficient))
	ch <- prometheus.MustNewConstMetric(collector.levelChanges, prometheus.CounterValue, float64(collector.monitor.ChangesReported()))
}
