package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMustRegisterWithCurriesServiceLabel(t *testing.T) {
	reg := prometheus.NewRegistry()
	MustRegisterWith(reg, "homehub-test")

	SensorReadingsIngestedTotal.WithLabelValues(SourceMAC, ResultSuccess).Inc()
	SensorReadingsIngestedTotal.WithLabelValues(SourceMAC, ResultSuccess).Inc()
	SensorReadingsIngestedTotal.WithLabelValues(SourceMAC, ResultRejected).Inc()

	if got := testutil.ToFloat64(sensorReadingsIngestedTotal.WithLabelValues("homehub-test", SourceMAC, ResultSuccess)); got != 2 {
		t.Fatalf("expected 2 successful mac ingestions, got %v", got)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	found := false
	for _, mf := range families {
		if mf.GetName() != "sensor_readings_ingested_total" {
			continue
		}
		found = true
		for _, m := range mf.GetMetric() {
			var service string
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "service" {
					service = lp.GetValue()
				}
			}
			if service != "homehub-test" {
				t.Fatalf("expected service label homehub-test, got %q", service)
			}
		}
	}
	if !found {
		t.Fatalf("sensor_readings_ingested_total not registered")
	}
}
