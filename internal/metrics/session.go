package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

// RegisterSessionStateGauge exposes the lock state of the journal session.
// observe is called on every collection and returns 1 while the session is
// unlocked and 0 otherwise.
func RegisterSessionStateGauge(
	meterProvider metric.MeterProvider,
	namespace string,
	observe func() int64,
) error {
	meter := meterProvider.Meter(namespace)

	_, err := meter.Int64ObservableGauge(
		fmt.Sprintf("%s_session_unlocked", namespace),
		metric.WithDescription("Whether the journal session currently holds a master key"),
		metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
			o.Observe(observe())
			return nil
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to create session state gauge: %w", err)
	}
	return nil
}
