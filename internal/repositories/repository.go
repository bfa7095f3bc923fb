package repositories

import "context"

// Repository aggregates all entity repositories behind one handle.
type Repository interface {
	User() UserRepository
	MatchRequest() MatchRequestRepository
	Meeting() MeetingRepository

	// Transaction support
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// WithSerializableTransaction runs fn at serializable isolation,
	// for check-then-insert paths whose invariant spans rows.
	WithSerializableTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager interface for managing repository lifecycle
type RepositoryManager interface {
	// Initialize repositories with database connections
	Initialize() error

	// Get repository instance
	GetRepository() Repository

	// Health check for all repositories
	HealthCheck(ctx context.Context) error

	// Graceful shutdown
	Shutdown() error
}
