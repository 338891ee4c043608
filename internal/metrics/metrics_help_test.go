package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestMetricHelpDescriptions(t *testing.T) {
	registry := prometheus.NewRegistry()
	NewWithRegistry(registry, nil)

	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("Failed to gather metrics: %v", err)
	}

	// Check each metric has a non-empty help description
	for _, mf := range metricFamilies {
		name := mf.GetName()
		help := mf.GetHelp()

		if help == "" {
			t.Errorf("Metric '%s' has an empty help description", name)
		}

		if len(strings.TrimSpace(help)) == 0 {
			t.Errorf("Metric '%s' has a help description with only whitespace", name)
		}
	}
}

func TestMetricNamesUseNamespace(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewWithRegistry(registry, nil)

	// Vec metrics only appear after first use
	m.RecordHTTPRequest("GET", "/api/qa/projects", 200, 0)
	m.IncrementResultRecorded("PASS")

	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("Failed to gather metrics: %v", err)
	}

	for _, mf := range metricFamilies {
		if !strings.HasPrefix(mf.GetName(), namespace+"_") {
			t.Errorf("Metric '%s' does not carry the %s namespace", mf.GetName(), namespace)
		}
	}
}
