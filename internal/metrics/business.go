package metrics

// IncrementProjectCreated increments project creation counter
func (m *Metrics) IncrementProjectCreated() {
	m.safeExecute("IncrementProjectCreated", func() {
		m.ProjectCreatedTotal.Inc()
	})
}

// IncrementModuleCreated increments module creation counter
func (m *Metrics) IncrementModuleCreated() {
	m.safeExecute("IncrementModuleCreated", func() {
		m.ModuleCreatedTotal.Inc()
	})
}

// IncrementModuleAttached increments module attach counter
func (m *Metrics) IncrementModuleAttached() {
	m.safeExecute("IncrementModuleAttached", func() {
		m.ModuleAttachedTotal.Inc()
	})
}

// IncrementResultRecorded increments the result counter for a status
func (m *Metrics) IncrementResultRecorded(status string) {
	m.safeExecute("IncrementResultRecorded", func() {
		m.ResultRecordedTotal.WithLabelValues(status).Inc()
	})
}

// SetProjectsTotal sets total projects gauge
func (m *Metrics) SetProjectsTotal(count int64) {
	m.safeExecute("SetProjectsTotal", func() {
		m.ProjectsTotal.Set(float64(count))
	})
}

// SetModulesTotal sets total modules gauge
func (m *Metrics) SetModulesTotal(count int64) {
	m.safeExecute("SetModulesTotal", func() {
		m.ModulesTotal.Set(float64(count))
	})
}
