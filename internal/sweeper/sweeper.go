package sweeper

import (
	"context"
)

// Sweeper is a long-running background task performing periodic maintenance,
// such as settling expired auctions.
//
//go:generate mockgen -source=sweeper.go -destination=../mocks/sweeper.go -package=mocks -mock_names=Sweeper=MockSweeper
type Sweeper interface {
	// Start runs the sweeper loop. It blocks until the context is canceled.
	Start(ctx context.Context) error

	// Stop shuts the sweeper down, waiting for in-flight work to finish
	// or the context to expire.
	Stop(ctx context.Context) error

	// Name identifies the sweeper in logs
	Name() string
}
