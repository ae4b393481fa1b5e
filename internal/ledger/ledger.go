package ledger

import (
	"context"

	"github.com/perma-museum/custodian/internal/domain"
)

// Service is the external funds-ledger capability the exchange settles
// against. Calls run synchronously inside the operation that needs them; a
// failed call aborts the whole operation, so no state transition is observable
// without its matching funds movement.
//
//go:generate mockgen -source=ledger.go -destination=../mocks/ledger.go -package=mocks -mock_names=Service=MockLedger
type Service interface {
	// Transfer moves amount from one principal to another
	Transfer(ctx context.Context, from, to domain.Principal, amount int64, memo string) error

	// Escrow holds amount from the bidder against the given asset
	Escrow(ctx context.Context, bidder domain.Principal, ref domain.AssetRef, amount int64) error

	// ReleaseEscrow pays escrowed funds held for ref on behalf of bidder out
	// to the recipient
	ReleaseEscrow(ctx context.Context, ref domain.AssetRef, bidder, to domain.Principal, amount int64) error

	// RefundEscrow returns escrowed funds held for ref back to the bidder
	RefundEscrow(ctx context.Context, ref domain.AssetRef, bidder domain.Principal, amount int64) error
}
