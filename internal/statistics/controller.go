package statistics

import (
	"github.com/costumeworks/suitfan/internal/controller"
	"github.com/prometheus/client_golang/prometheus"
)

const controllerSubsystem = "controller"

type ControllerCollector struct {
	controller controller.Controller

	presetIndex   *prometheus.Desc
	lockedOut     *prometheus.Desc
	dummyEnabled  *prometheus.Desc
	indicating    *prometheus.Desc
	eventsHandled *prometheus.Desc
}

func NewControllerCollector(c controller.Controller) *ControllerCollector {
	return &ControllerCollector{
		controller: c,
		presetIndex: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "preset_index"),
			"Currently selected preset index",
			nil, nil,
		),
		lockedOut: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "locked_out"),
			"Whether the loads are locked out due to insufficient supply power",
			nil, nil,
		),
		dummyEnabled: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "dummy_enabled"),
			"Whether the dummy load output follows the preset",
			nil, nil,
		),
		indicating: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "indicating"),
			"Whether the indicator is currently showing the preset color",
			nil, nil,
		),
		eventsHandled: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "events_handled_total"),
			"Counter for events consumed from the event queue",
			nil, nil,
		),
	}
}

func (collector *ControllerCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.presetIndex
	ch <- collector.lockedOut
	ch <- collector.dummyEnabled
	ch <- collector.indicating
	ch <- collector.eventsHandled
}

// Collect implements required collect function for all prometheus collectors
func (collector *ControllerCollector) Collect(ch chan<- prometheus.Metric) {
	state := collector.controller.Snapshot()

	ch <- prometheus.MustNewConstMetric(collector.presetIndex, prometheus.GaugeValue, float64(state.PresetIndex))
	ch <- prometheus.MustNewConstMetric(collector.lockedOut, prometheus.GaugeValue, boolToFloat(state.LockedOut))
	ch <- prometheus.MustNewConstMetric(collector.dummyEnabled, prometheus.GaugeValue, boolToFloat(state.DummyEnabled))
	ch <- prometheus.MustNewConstMetric(collector.indicating, prometheus.GaugeValue, boolToFloat(state.IndicatorDeadline != nil))
	ch <- prometheus.MustNewConstMetric(collector.eventsHandled, prometheus.CounterValue, float64(collector.controller.EventsHandled()))
}

func boolToFloat(value bool) float64 {
	if value {
		return 1
	}
	return 0
}
