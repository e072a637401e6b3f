package loop

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/tomz197/starstrike/internal/loop"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// metrics are recorded against the global OTel provider (no-op if not configured).
type metrics struct {
	frames    metric.Int64Counter
	dropped   metric.Int64Counter
	destroyed metric.Int64Counter
	waves     metric.Int64Counter
}

func newMetrics() (*metrics, error) {
	m := meter()
	var (
		mt  metrics
		err error
	)

	mt.frames, err = m.Int64Counter(
		"engine.frames.simulated",
		metric.WithDescription("Total simulated gameplay frames"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating frames counter: %w", err)
	}

	mt.dropped, err = m.Int64Counter(
		"engine.spawns.dropped",
		metric.WithDescription("Spawn requests dropped because a pool was exhausted"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating dropped counter: %w", err)
	}

	mt.destroyed, err = m.Int64Counter(
		"engine.enemies.destroyed",
		metric.WithDescription("Enemies destroyed by the player"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating destroyed counter: %w", err)
	}

	mt.waves, err = m.Int64Counter(
		"engine.waves.advanced",
		metric.WithDescription("Wave transitions"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating waves counter: %w", err)
	}

	return &mt, nil
}

func (m *metrics) frame() {
	m.frames.Add(context.Background(), 1)
}

func (m *metrics) drop(pool string) {
	m.dropped.Add(context.Background(), 1, metric.WithAttributes(attribute.String("pool", pool)))
}

func (m *metrics) destroy(class string) {
	m.destroyed.Add(context.Background(), 1, metric.WithAttributes(attribute.String("class", class)))
}

func (m *metrics) wave() {
	m.waves.Add(context.Background(), 1)
}
