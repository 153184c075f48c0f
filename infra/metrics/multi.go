package metrics

import coremetrics "github.com/swiftroute/dispatch/core/metrics"

// MultiSink fans planning events out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordPlan forwards the event to all sinks, returning the first error.
func (m *MultiSink) RecordPlan(ev coremetrics.PlanEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordPlan(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordEstimate forwards estimate events to interested sinks.
func (m *MultiSink) RecordEstimate(ev coremetrics.EstimateEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.EstimateRecorder); ok {
			if err := rec.RecordEstimate(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordFleetSize forwards the registry size to interested sinks.
func (m *MultiSink) RecordFleetSize(size int) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.FleetSizeRecorder); ok {
			if err := rec.RecordFleetSize(size); err != nil {
				return err
			}
		}
	}
	return nil
}
