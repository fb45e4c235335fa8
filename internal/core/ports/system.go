package ports

import "context"

// Migrator applies the relational schema.
type Migrator interface {
	Migrate(ctx context.Context) error
}

// InitResult reports what database initialization did.
type InitResult struct {
	Migrated      bool
	SeededDomains int
}

type SystemService interface {
	Initialize(ctx context.Context) (*InitResult, error)
}
