package tokenstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/blessedav/FINALGO/pkg/logger"
)

// Open creates the store selected by cfg.Backend; empty means bolt.
func Open(ctx context.Context, cfg Config, log logger.Logger) (Store, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", BackendBolt:
		return NewBolt(cfg, log)
	case BackendRedis:
		return NewRedis(ctx, cfg, log)
	case BackendMemory:
		return NewMemory(""), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, cfg.Backend)
	}
}
