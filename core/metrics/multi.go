package metrics

// MultiSink fans events out to multiple sinks. Optional recorder interfaces
// are only forwarded to sinks implementing them.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordRanking forwards the event to all sinks, returning the first error encountered.
func (m *MultiSink) RecordRanking(ev RankingEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordRanking(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordRefresh forwards refresh events.
func (m *MultiSink) RecordRefresh(ev RefreshEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(RefreshRecorder); ok {
			if err := rec.RecordRefresh(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordRouteSummary forwards route summaries.
func (m *MultiSink) RecordRouteSummary(ev RouteSummaryEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(RouteSummaryRecorder); ok {
			if err := rec.RecordRouteSummary(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordDispatchOrder forwards order events.
func (m *MultiSink) RecordDispatchOrder(ev DispatchOrderEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(DispatchOrderRecorder); ok {
			if err := rec.RecordDispatchOrder(ev); err != nil {
				return err
			}
		}
	}
	return nil
}
