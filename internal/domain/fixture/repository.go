package fixture

import "context"

// Repository is the persistence collaborator contract. The engine
// reads previously stored fixtures and writes the reconciled list
// back; storage format and freshness policy belong to the
// implementation.
type Repository interface {
	List(ctx context.Context) ([]Fixture, error)
	ReplaceAll(ctx context.Context, fixtures []Fixture) error
}
