package oracle

import (
	"context"
	"errors"
	"fmt"

	"github.com/EmpoweredVote/DoseRight/internal/config"
	"go.uber.org/zap"
)

// Common errors
var (
	// ErrUnavailable wraps every failure to get an answer from the oracle service.
	ErrUnavailable = errors.New("oracle unavailable")
	ErrUnknown     = errors.New("unknown oracle type")
)

// Oracle is the external generative model. It is treated as an opaque
// text-completion and image-captioning service.
type Oracle interface {
	// Name returns the oracle name for logging purposes.
	Name() string

	// Complete answers a text prompt.
	Complete(ctx context.Context, prompt string) (string, error)

	// Identify answers prompt about the given image.
	Identify(ctx context.Context, image []byte, mimeType, prompt string) (string, error)
}

// Constructor builds an Oracle from configuration.
type Constructor func(ctx context.Context, cfg config.Config, lg *zap.Logger) (Oracle, error)

// registry holds registered oracle constructors. Adapters register from init().
var registry = map[config.OracleType]Constructor{
	config.OracleOffline: func(context.Context, config.Config, *zap.Logger) (Oracle, error) {
		return Offline{}, nil
	},
}

// Register registers a constructor for an oracle type.
func Register(t config.OracleType, c Constructor) {
	registry[t] = c
}

// New creates the oracle selected by cfg.Oracle.
func New(ctx context.Context, cfg config.Config, lg *zap.Logger) (Oracle, error) {
	constructor, ok := registry[cfg.Oracle]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknown, cfg.Oracle)
	}
	return constructor(ctx, cfg, lg)
}

// Offline answers nothing. It is used when no oracle credential is configured,
// so every scan degrades to fallback content.
type Offline struct{}

func (Offline) Name() string { return "offline" }

func (Offline) Complete(context.Context, string) (string, error) {
	return "", fmt.Errorf("%w: offline", ErrUnavailable)
}

func (Offline) Identify(context.Context, []byte, string, string) (string, error) {
	return "", fmt.Errorf("%w: offline", ErrUnavailable)
}
