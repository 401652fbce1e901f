package services

import (
	"context"
	"fmt"

	"github.com/gosimple/slug"
)

const maxSlugAttempts = 50

// uniqueSlug slugifies name and appends -2, -3, ... until exists reports a free value.
func uniqueSlug(ctx context.Context, name string, exists func(context.Context, string) (bool, error)) (string, error) {
	base := slug.Make(name)
	if base == "" {
		return "", fmt.Errorf("%w: name %q has no usable characters", ErrValidation, name)
	}
	candidate := base
	for i := 2; i <= maxSlugAttempts; i++ {
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return "", fmt.Errorf("%w: no free slug for %q", ErrConflict, name)
}
