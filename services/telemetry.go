package services

import (
	"context"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	tracer = otel.Tracer("go_trial/foodhub/services")
	meter  = otel.Meter("go_trial/foodhub/services")

	ordersCreated, _       = meter.Int64Counter("orders.created", metric.WithDescription("Orders placed"))
	orderRevenue, _        = meter.Float64Counter("orders.revenue", metric.WithDescription("Sum of order totals at creation"))
	reservationsCreated, _ = meter.Int64Counter("reservations.created", metric.WithDescription("Reservations booked"))
	reviewsCreated, _      = meter.Int64Counter("reviews.created", metric.WithDescription("Reviews written"))
	sideEffectFailures, _  = meter.Int64Counter("side_effects.failed", metric.WithDescription("Swallowed notification and event failures"))
)

// bestEffort runs a side effect whose failure must never fail the caller.
func bestEffort(ctx context.Context, kind string, fields logrus.Fields, fn func(context.Context) error) {
	if err := fn(ctx); err != nil {
		sideEffectFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
		logrus.WithError(err).WithFields(fields).WithField("kind", kind).Warn("side effect failed")
	}
}
