package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/perma-museum/custodian/internal/adapter"
	"github.com/perma-museum/custodian/internal/auth"
	"github.com/perma-museum/custodian/internal/domain"
	"github.com/perma-museum/custodian/internal/logger"
	"github.com/perma-museum/custodian/internal/messaging"
	"github.com/perma-museum/custodian/internal/providers/museum"
	"github.com/perma-museum/custodian/internal/store"
	"github.com/perma-museum/custodian/internal/store/schema"
)

// Settler is the capability the exchange uses to move ownership inside its
// own settlement transaction. It shares the transactional store view so the
// ownership change commits or rolls back with the sale.
//
//go:generate mockgen -source=service.go -destination=../mocks/settler.go -package=mocks -mock_names=Settler=MockSettler
type Settler interface {
	// Settle transfers ownership as part of a sale or auction settlement,
	// appending the matching provenance record and clearing any approval
	Settle(ctx context.Context, tx store.Store, from, to domain.Principal, ref domain.AssetRef, kind domain.ProvenanceKind, note string) error
}

// Service implements the asset registry: minting, custody transfers,
// delegated transfers and the provenance chain. All authorization claims are
// checked against the oracle before any state is read.
type Service struct {
	store     store.Store
	oracle    auth.Oracle
	museums   museum.Client
	publisher messaging.Publisher
	clock     adapter.Clock
}

// NewService creates the registry service. The museum client and publisher
// are optional; a nil museum client disables custodian verification at mint
// and a nil publisher disables event emission.
func NewService(s store.Store, oracle auth.Oracle, museums museum.Client, publisher messaging.Publisher, clock adapter.Clock) *Service {
	return &Service{
		store:     s,
		oracle:    oracle,
		museums:   museums,
		publisher: publisher,
		clock:     clock,
	}
}

// Initialize sets up the registry instance with its administrator and
// collection identity. It can only succeed once.
func (s *Service) Initialize(ctx context.Context, admin domain.Principal, name, symbol string) error {
	if err := s.oracle.Verify(ctx, admin); err != nil {
		return err
	}
	if name == "" || symbol == "" {
		return fmt.Errorf("%w: name and symbol are required", domain.ErrInvalidParameter)
	}

	return s.store.Atomic(ctx, func(tx store.Store) error {
		_, found, err := tx.GetSetting(ctx, schema.SettingRegistryAdmin)
		if err != nil {
			return err
		}
		if found {
			return domain.ErrAlreadyInitialized
		}

		if err := tx.SetSetting(ctx, schema.SettingRegistryAdmin, admin.String()); err != nil {
			return err
		}
		if err := tx.SetSetting(ctx, schema.SettingRegistryName, name); err != nil {
			return err
		}
		if err := tx.SetSetting(ctx, schema.SettingRegistrySymbol, symbol); err != nil {
			return err
		}
		return tx.SetSetting(ctx, schema.SettingRegistrySupply, "0")
	})
}

// TransferAdmin hands registry administration to a new principal
func (s *Service) TransferAdmin(ctx context.Context, caller, newAdmin domain.Principal) error {
	if err := s.oracle.Verify(ctx, caller); err != nil {
		return err
	}
	if !newAdmin.Valid() {
		return fmt.Errorf("%w: malformed new admin", domain.ErrInvalidParameter)
	}

	err := s.store.Atomic(ctx, func(tx store.Store) error {
		if _, err := s.requireAdmin(ctx, tx, caller); err != nil {
			return err
		}

		return tx.SetSetting(ctx, schema.SettingRegistryAdmin, newAdmin.String())
	})
	if err != nil {
		return err
	}

	s.emit(ctx, domain.EventTypeAdminTransferred, "", caller, newAdmin, 0)
	return nil
}

// Mint registers a new asset under the given reference with its immutable
// metadata and a caller-supplied initial provenance chain. The chain may be
// empty for a freshly created asset, or carry pre-custody history for a piece
// entering the registry. Only the administrator can mint, and the metadata
// custodian must be a verified museum when verification is enabled.
func (s *Service) Mint(ctx context.Context, caller, owner domain.Principal, ref domain.AssetRef, metadata domain.AssetMetadata, initial []domain.ProvenanceRecord) error {
	if err := s.oracle.Verify(ctx, caller); err != nil {
		return err
	}
	if !ref.Valid() {
		return fmt.Errorf("%w: malformed asset ref %q", domain.ErrInvalidParameter, ref.String())
	}
	if !owner.Valid() {
		return fmt.Errorf("%w: malformed owner", domain.ErrInvalidParameter)
	}
	if !metadata.Valid() {
		return fmt.Errorf("%w: incomplete metadata", domain.ErrInvalidParameter)
	}
	for i, rec := range initial {
		if !domain.ValidProvenanceKind(rec.Kind) {
			return fmt.Errorf("%w: unknown provenance kind %q at position %d", domain.ErrInvalidParameter, rec.Kind, i)
		}
	}

	if s.museums != nil {
		verified, err := s.museums.IsVerified(ctx, metadata.Custodian)
		if err != nil {
			return fmt.Errorf("failed to verify custodian: %w", err)
		}
		if !verified {
			return fmt.Errorf("%w: custodian %q is not a verified museum", domain.ErrUnauthorized, metadata.Custodian.String())
		}
	}

	registryID, tokenNumber, err := ref.Parse()
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidParameter, err)
	}

	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	err = s.store.Atomic(ctx, func(tx store.Store) error {
		if _, err := s.requireAdmin(ctx, tx, caller); err != nil {
			return err
		}

		existing, err := tx.GetAsset(ctx, ref.String())
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: asset %q", domain.ErrAlreadyExists, ref.String())
		}

		now := s.clock.Now()
		asset := &schema.Asset{
			AssetRef:    ref.String(),
			RegistryID:  registryID,
			TokenNumber: tokenNumber,
			Owner:       owner.String(),
			Metadata:    metadataJSON,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		chain := make([]schema.ProvenanceRecord, 0, len(initial))
		for _, rec := range initial {
			ts := rec.Timestamp
			if ts.IsZero() {
				ts = now
			}
			chain = append(chain, schema.ProvenanceRecord{
				Kind:          rec.Kind,
				FromPrincipal: rec.From.String(),
				ToPrincipal:   rec.To.String(),
				Note:          rec.Note,
				Timestamp:     ts,
			})
		}
		if err := tx.CreateAsset(ctx, asset, chain); err != nil {
			return err
		}

		_, err = tx.IncrSetting(ctx, schema.SettingRegistrySupply, 1)
		return err
	})
	if err != nil {
		return err
	}

	s.emit(ctx, domain.EventTypeMinted, ref, "", owner, 0)
	return nil
}

// Transfer moves custody of an asset from its current owner to a new
// principal. Any outstanding approval is cleared by the ownership change.
func (s *Service) Transfer(ctx context.Context, caller, from, to domain.Principal, ref domain.AssetRef, note string) error {
	if err := s.oracle.Verify(ctx, caller); err != nil {
		return err
	}
	if caller != from {
		return fmt.Errorf("%w: caller is not the sender", domain.ErrUnauthorized)
	}
	if !to.Valid() {
		return fmt.Errorf("%w: malformed recipient", domain.ErrInvalidParameter)
	}

	err := s.store.Atomic(ctx, func(tx store.Store) error {
		asset, err := s.requireAsset(ctx, tx, ref)
		if err != nil {
			return err
		}
		if asset.Owner != from.String() {
			return fmt.Errorf("%w: %q does not own %q", domain.ErrUnauthorized, from.String(), ref.String())
		}
		if err := s.requireUnlocked(ctx, tx, ref); err != nil {
			return err
		}

		return s.moveOwnership(ctx, tx, asset, from, to, domain.ProvenanceKindTransfer, note)
	})
	if err != nil {
		return err
	}

	s.emit(ctx, domain.EventTypeTransferred, ref, from, to, 0)
	return nil
}

// Approve grants a single transfer delegate for an asset, replacing any
// previously approved delegate
func (s *Service) Approve(ctx context.Context, caller, owner, delegate domain.Principal, ref domain.AssetRef) error {
	if err := s.oracle.Verify(ctx, caller); err != nil {
		return err
	}
	if caller != owner {
		return fmt.Errorf("%w: caller is not the owner", domain.ErrUnauthorized)
	}
	if !delegate.Valid() || delegate == owner {
		return fmt.Errorf("%w: malformed delegate", domain.ErrInvalidParameter)
	}

	err := s.store.Atomic(ctx, func(tx store.Store) error {
		asset, err := s.requireAsset(ctx, tx, ref)
		if err != nil {
			return err
		}
		if asset.Owner != owner.String() {
			return fmt.Errorf("%w: %q does not own %q", domain.ErrUnauthorized, owner.String(), ref.String())
		}

		return tx.UpsertApproval(ctx, &schema.Approval{
			AssetID:   asset.ID,
			Delegate:  delegate.String(),
			GrantedBy: owner.String(),
		})
	})
	if err != nil {
		return err
	}

	s.emit(ctx, domain.EventTypeApprovalGranted, ref, owner, delegate, 0)
	return nil
}

// TransferFrom executes a transfer on behalf of the owner by the approved
// delegate. The approval is consumed by the transfer.
func (s *Service) TransferFrom(ctx context.Context, caller, delegate, from, to domain.Principal, ref domain.AssetRef, note string) error {
	if err := s.oracle.Verify(ctx, caller); err != nil {
		return err
	}
	if caller != delegate {
		return fmt.Errorf("%w: caller is not the delegate", domain.ErrUnauthorized)
	}
	if !to.Valid() {
		return fmt.Errorf("%w: malformed recipient", domain.ErrInvalidParameter)
	}

	err := s.store.Atomic(ctx, func(tx store.Store) error {
		asset, err := s.requireAsset(ctx, tx, ref)
		if err != nil {
			return err
		}
		if asset.Owner != from.String() {
			return fmt.Errorf("%w: %q does not own %q", domain.ErrUnauthorized, from.String(), ref.String())
		}

		approval, err := tx.GetApproval(ctx, asset.ID)
		if err != nil {
			return err
		}
		if approval == nil || approval.Delegate != delegate.String() {
			return fmt.Errorf("%w: %q is not the approved delegate for %q", domain.ErrUnauthorized, delegate.String(), ref.String())
		}
		if err := s.requireUnlocked(ctx, tx, ref); err != nil {
			return err
		}

		return s.moveOwnership(ctx, tx, asset, from, to, domain.ProvenanceKindApprovedTransfer, note)
	})
	if err != nil {
		return err
	}

	s.emit(ctx, domain.EventTypeTransferred, ref, from, to, 0)
	return nil
}

// Settle transfers ownership inside the exchange's settlement transaction
func (s *Service) Settle(ctx context.Context, tx store.Store, from, to domain.Principal, ref domain.AssetRef, kind domain.ProvenanceKind, note string) error {
	if !domain.ValidProvenanceKind(kind) {
		return fmt.Errorf("%w: unknown provenance kind %q", domain.ErrInvalidParameter, kind)
	}

	asset, err := s.requireAsset(ctx, tx, ref)
	if err != nil {
		return err
	}
	if asset.Owner != from.String() {
		return fmt.Errorf("%w: %q does not own %q", domain.ErrUnauthorized, from.String(), ref.String())
	}

	return s.moveOwnership(ctx, tx, asset, from, to, kind, note)
}

// OwnerOf returns the current owner of an asset
func (s *Service) OwnerOf(ctx context.Context, ref domain.AssetRef) (domain.Principal, error) {
	asset, err := s.requireAsset(ctx, s.store, ref)
	if err != nil {
		return "", err
	}
	return domain.Principal(asset.Owner), nil
}

// Metadata returns the immutable metadata captured when the asset was minted
func (s *Service) Metadata(ctx context.Context, ref domain.AssetRef) (*domain.AssetMetadata, error) {
	asset, err := s.requireAsset(ctx, s.store, ref)
	if err != nil {
		return nil, err
	}

	var metadata domain.AssetMetadata
	if err := json.Unmarshal(asset.Metadata, &metadata); err != nil {
		return nil, fmt.Errorf("failed to unmarshal metadata for %q: %w", ref.String(), err)
	}
	return &metadata, nil
}

// Provenance returns the asset's full ownership history in insertion order
func (s *Service) Provenance(ctx context.Context, ref domain.AssetRef) ([]domain.ProvenanceRecord, error) {
	asset, err := s.requireAsset(ctx, s.store, ref)
	if err != nil {
		return nil, err
	}

	records, err := s.store.ListProvenance(ctx, asset.ID)
	if err != nil {
		return nil, err
	}

	chain := make([]domain.ProvenanceRecord, 0, len(records))
	for _, r := range records {
		chain = append(chain, domain.ProvenanceRecord{
			Timestamp: r.Timestamp,
			From:      domain.Principal(r.FromPrincipal),
			To:        domain.Principal(r.ToPrincipal),
			Kind:      r.Kind,
			Note:      r.Note,
		})
	}
	return chain, nil
}

// Exists reports whether an asset has been minted under the reference
func (s *Service) Exists(ctx context.Context, ref domain.AssetRef) (bool, error) {
	asset, err := s.store.GetAsset(ctx, ref.String())
	if err != nil {
		return false, err
	}
	return asset != nil, nil
}

// TotalSupply returns the number of assets minted so far
func (s *Service) TotalSupply(ctx context.Context) (int64, error) {
	value, err := s.requireSetting(ctx, schema.SettingRegistrySupply)
	if err != nil {
		return 0, err
	}

	supply, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt supply counter: %w", err)
	}
	return supply, nil
}

// Name returns the collection name
func (s *Service) Name(ctx context.Context) (string, error) {
	return s.requireSetting(ctx, schema.SettingRegistryName)
}

// Symbol returns the collection symbol
func (s *Service) Symbol(ctx context.Context) (string, error) {
	return s.requireSetting(ctx, schema.SettingRegistrySymbol)
}

// Admin returns the current registry administrator
func (s *Service) Admin(ctx context.Context) (domain.Principal, error) {
	value, err := s.requireSetting(ctx, schema.SettingRegistryAdmin)
	if err != nil {
		return "", err
	}
	return domain.Principal(value), nil
}

// moveOwnership applies an ownership change: owner update, provenance append
// and approval clear, all on the same transactional view
func (s *Service) moveOwnership(ctx context.Context, tx store.Store, asset *schema.Asset, from, to domain.Principal, kind domain.ProvenanceKind, note string) error {
	if err := tx.UpdateAssetOwner(ctx, asset.ID, to.String()); err != nil {
		return err
	}

	if err := tx.AppendProvenance(ctx, &schema.ProvenanceRecord{
		AssetID:       asset.ID,
		Kind:          kind,
		FromPrincipal: from.String(),
		ToPrincipal:   to.String(),
		Note:          note,
		Timestamp:     s.clock.Now(),
	}); err != nil {
		return err
	}

	return tx.DeleteApproval(ctx, asset.ID)
}

// requireAdmin checks initialization and that the caller is the administrator
func (s *Service) requireAdmin(ctx context.Context, tx store.Store, caller domain.Principal) (domain.Principal, error) {
	admin, found, err := tx.GetSetting(ctx, schema.SettingRegistryAdmin)
	if err != nil {
		return "", err
	}
	if !found {
		return "", domain.ErrNotInitialized
	}
	if admin != caller.String() {
		return "", fmt.Errorf("%w: caller is not the registry admin", domain.ErrUnauthorized)
	}
	return domain.Principal(admin), nil
}

// requireAsset loads an asset or fails with NotFound
func (s *Service) requireAsset(ctx context.Context, tx store.Store, ref domain.AssetRef) (*schema.Asset, error) {
	asset, err := tx.GetAsset(ctx, ref.String())
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, fmt.Errorf("%w: asset %q", domain.ErrNotFound, ref.String())
	}
	return asset, nil
}

// requireUnlocked rejects custody transfers while the exchange holds the asset
func (s *Service) requireUnlocked(ctx context.Context, tx store.Store, ref domain.AssetRef) error {
	lock, err := tx.GetAssetLock(ctx, ref.String())
	if err != nil {
		return err
	}
	if lock == nil {
		return nil
	}
	if lock.Track == schema.LockTrackAuction {
		return fmt.Errorf("%w: asset %q has an active auction", domain.ErrAlreadyInAuction, ref.String())
	}
	return fmt.Errorf("%w: asset %q has an active listing", domain.ErrAlreadyListed, ref.String())
}

// requireSetting loads a registry setting or fails with NotInitialized
func (s *Service) requireSetting(ctx context.Context, key string) (string, error) {
	value, found, err := s.store.GetSetting(ctx, key)
	if err != nil {
		return "", err
	}
	if !found {
		return "", domain.ErrNotInitialized
	}
	return value, nil
}

// emit publishes a custody event after a committed state transition.
// Publishing is fire-and-forget; a broker outage never fails the operation.
func (s *Service) emit(ctx context.Context, eventType domain.EventType, ref domain.AssetRef, from, to domain.Principal, amount int64) {
	if s.publisher == nil {
		return
	}

	event := &domain.CustodyEvent{
		EventID:   ulid.MustNewDefault(s.clock.Now()).String(),
		EventType: eventType,
		AssetRef:  ref,
		From:      from,
		To:        to,
		Amount:    amount,
		Timestamp: s.clock.Now(),
	}

	if err := s.publisher.PublishEvent(ctx, event); err != nil {
		logger.Error(errors.New("failed to publish custody event"),
			zap.Error(err),
			zap.String("eventType", string(eventType)),
			zap.String("assetRef", ref.String()))
	}
}
