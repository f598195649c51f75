package source

import (
	"context"
	"time"

	"github.com/mmcdole/reel/internal/adapter"
	"github.com/mmcdole/reel/internal/domain"
)

const validateTimeout = 10 * time.Second

// NeedsToken reports whether the source type authenticates with a token
func NeedsToken(t adapter.SourceType) bool {
	return t == adapter.SourceTypeTMDB
}

// Validate checks credentials for sources that support it.
// Sources without credentials are reported valid.
func Validate(ctx context.Context, src domain.PageSource) error {
	v, ok := src.(domain.Validator)
	if !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, validateTimeout)
	defer cancel()
	return v.Validate(ctx)
}
