package standing

import "context"

// Repository exposes standings read/write for the engine's callers.
type Repository interface {
	List(ctx context.Context) ([]Standing, error)
	ReplaceAll(ctx context.Context, rows []Standing) error
}
