package services

import (
	"context"
	"fmt"
	"time"
)

const (
	orderSequence       = "order"
	reservationSequence = "reservation"
)

// dayNumber formats "<prefix>-YYYYMMDD-NNNN" from the day's next sequence value.
func dayNumber(ctx context.Context, seq Sequencer, kind, prefix string, now time.Time) (string, error) {
	day := now.UTC()
	n, err := seq.Next(ctx, kind, day)
	if err != nil {
		return "", fmt.Errorf("next %s number: %w", kind, err)
	}
	return fmt.Sprintf("%s-%s-%04d", prefix, day.Format("20060102"), n), nil
}
