package contracts

import "context"

type CounterRepository interface {
	// NextSequence atomically increments and returns the sequence for the
	// named counter in the given year, creating it on first use.
	NextSequence(ctx context.Context, name string, year int) (int, error)
	// CurrentSequence reads the last issued value without incrementing.
	CurrentSequence(ctx context.Context, name string, year int) (int, error)
}

// CounterService issues formatted consecutives. Peek results are advisory:
// a concurrent allocation may take the peeked number first.
type CounterService interface {
	NextCaseCode(ctx context.Context, year int) (string, error)
	PeekCaseNumber(ctx context.Context, year int) (int, error)
	NextApprovalCode(ctx context.Context, year int) (string, error)
	NextUnreadCaseCode(ctx context.Context, year int) (string, error)
}
