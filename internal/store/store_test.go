package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perma-museum/custodian/internal/domain"
	"github.com/perma-museum/custodian/internal/store/schema"
)

// =============================================================================
// Test Data Builders
// =============================================================================

// buildTestAsset creates a test asset with serialized metadata
func buildTestAsset(t *testing.T, registryID string, tokenNumber uint64, owner string) *schema.Asset {
	t.Helper()

	meta := domain.AssetMetadata{
		Title:     "Test Artifact",
		Creator:   "Unknown artisan",
		Period:    "Bronze Age",
		Culture:   "Minoan",
		Custodian: "museum-of-antiquities",
	}
	raw, err := json.Marshal(meta)
	require.NoError(t, err)

	return &schema.Asset{
		AssetRef:    domain.NewAssetRef(registryID, tokenNumber).String(),
		RegistryID:  registryID,
		TokenNumber: tokenNumber,
		Owner:       owner,
		Metadata:    raw,
	}
}

// buildTestProvenance creates a genesis provenance record
func buildTestProvenance(from, to string, kind domain.ProvenanceKind) schema.ProvenanceRecord {
	return schema.ProvenanceRecord{
		Kind:          kind,
		FromPrincipal: from,
		ToPrincipal:   to,
		Note:          "test record",
		Timestamp:     time.Now().UTC(),
	}
}

// =============================================================================
// Shared suite: runs against every Store implementation
// =============================================================================

func runStoreSuite(t *testing.T, newStore func(t *testing.T) Store) {
	ctx := context.Background()

	t.Run("settings roundtrip and counters", func(t *testing.T) {
		s := newStore(t)

		_, found, err := s.GetSetting(ctx, schema.SettingRegistryAdmin)
		require.NoError(t, err)
		assert.False(t, found)

		require.NoError(t, s.SetSetting(ctx, schema.SettingRegistryAdmin, "curator-alice"))
		value, found, err := s.GetSetting(ctx, schema.SettingRegistryAdmin)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "curator-alice", value)

		// Overwrite
		require.NoError(t, s.SetSetting(ctx, schema.SettingRegistryAdmin, "curator-bob"))
		value, _, err = s.GetSetting(ctx, schema.SettingRegistryAdmin)
		require.NoError(t, err)
		assert.Equal(t, "curator-bob", value)

		// Counter starts at zero when absent
		n, err := s.IncrSetting(ctx, schema.SettingRegistrySupply, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
		n, err = s.IncrSetting(ctx, schema.SettingRegistrySupply, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
	})

	t.Run("asset lifecycle with provenance", func(t *testing.T) {
		s := newStore(t)

		asset := buildTestAsset(t, "heritage-main", 1, "curator-alice")
		genesis := buildTestProvenance("", "curator-alice", domain.ProvenanceKindTransfer)
		require.NoError(t, s.CreateAsset(ctx, asset, []schema.ProvenanceRecord{genesis}))
		require.NotZero(t, asset.ID)

		// Duplicate ref rejected
		dup := buildTestAsset(t, "heritage-main", 1, "curator-bob")
		assert.Error(t, s.CreateAsset(ctx, dup, nil))

		got, err := s.GetAsset(ctx, asset.AssetRef)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "curator-alice", got.Owner)
		assert.Equal(t, "heritage-main", got.RegistryID)
		assert.Equal(t, uint64(1), got.TokenNumber)

		// Absent asset returns nil without error
		missing, err := s.GetAsset(ctx, "heritage-main:999")
		require.NoError(t, err)
		assert.Nil(t, missing)

		// Ownership change
		require.NoError(t, s.UpdateAssetOwner(ctx, asset.ID, "collector-bob"))
		got, err = s.GetAsset(ctx, asset.AssetRef)
		require.NoError(t, err)
		assert.Equal(t, "collector-bob", got.Owner)

		// Provenance chain grows in order with consecutive sequence numbers
		record := buildTestProvenance("curator-alice", "collector-bob", domain.ProvenanceKindSale)
		record.AssetID = asset.ID
		require.NoError(t, s.AppendProvenance(ctx, &record))

		chain, err := s.ListProvenance(ctx, asset.ID)
		require.NoError(t, err)
		require.Len(t, chain, 2)
		assert.Equal(t, uint64(1), chain[0].Seq)
		assert.Equal(t, uint64(2), chain[1].Seq)
		assert.Equal(t, domain.ProvenanceKindSale, chain[1].Kind)
		assert.Equal(t, "collector-bob", chain[1].ToPrincipal)
	})

	t.Run("approval upsert overwrite and delete", func(t *testing.T) {
		s := newStore(t)

		asset := buildTestAsset(t, "heritage-main", 2, "curator-alice")
		require.NoError(t, s.CreateAsset(ctx, asset, nil))

		approval, err := s.GetApproval(ctx, asset.ID)
		require.NoError(t, err)
		assert.Nil(t, approval)

		require.NoError(t, s.UpsertApproval(ctx, &schema.Approval{
			AssetID:   asset.ID,
			Delegate:  "broker-carol",
			GrantedBy: "curator-alice",
		}))

		approval, err = s.GetApproval(ctx, asset.ID)
		require.NoError(t, err)
		require.NotNil(t, approval)
		assert.Equal(t, "broker-carol", approval.Delegate)

		// Overwrite keeps a single outstanding delegate
		require.NoError(t, s.UpsertApproval(ctx, &schema.Approval{
			AssetID:   asset.ID,
			Delegate:  "broker-dave",
			GrantedBy: "curator-alice",
		}))
		approval, err = s.GetApproval(ctx, asset.ID)
		require.NoError(t, err)
		require.NotNil(t, approval)
		assert.Equal(t, "broker-dave", approval.Delegate)

		require.NoError(t, s.DeleteApproval(ctx, asset.ID))
		approval, err = s.GetApproval(ctx, asset.ID)
		require.NoError(t, err)
		assert.Nil(t, approval)
	})

	t.Run("listing records survive deactivation", func(t *testing.T) {
		s := newStore(t)
		ref := domain.NewAssetRef("heritage-main", 3).String()

		first := &schema.Listing{AssetRef: ref, Seller: "curator-alice", Price: 100, Active: true}
		require.NoError(t, s.CreateListing(ctx, first))
		require.NotZero(t, first.ID)

		latest, err := s.GetLatestListing(ctx, ref)
		require.NoError(t, err)
		require.NotNil(t, latest)
		assert.True(t, latest.Active)

		require.NoError(t, s.DeactivateListing(ctx, first.ID))
		latest, err = s.GetLatestListing(ctx, ref)
		require.NoError(t, err)
		require.NotNil(t, latest)
		assert.False(t, latest.Active)

		// Re-listing creates a fresh row; the latest record is the new one
		second := &schema.Listing{AssetRef: ref, Seller: "curator-alice", Price: 150, Active: true}
		require.NoError(t, s.CreateListing(ctx, second))

		latest, err = s.GetLatestListing(ctx, ref)
		require.NoError(t, err)
		require.NotNil(t, latest)
		assert.Equal(t, second.ID, latest.ID)
		assert.Equal(t, int64(150), latest.Price)
		assert.True(t, latest.Active)
	})

	t.Run("auction lifecycle with bids", func(t *testing.T) {
		s := newStore(t)
		ref := domain.NewAssetRef("heritage-main", 4).String()
		now := time.Now().UTC()

		auction := &schema.Auction{
			AssetRef:      ref,
			Seller:        "curator-alice",
			StartingPrice: 100,
			HighestBidder: "curator-alice",
			StartTime:     now,
			EndTime:       now.Add(time.Hour),
			Active:        true,
		}
		require.NoError(t, s.CreateAuction(ctx, auction))
		require.NotZero(t, auction.ID)

		require.NoError(t, s.UpdateAuctionBid(ctx, auction.ID, 150, "collector-bob"))
		got, err := s.GetAuction(ctx, auction.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(150), got.CurrentBid)
		assert.Equal(t, "collector-bob", got.HighestBidder)

		// Bid upsert overwrites the bidder's previous amount
		bid := &schema.Bid{AuctionID: auction.ID, Bidder: "collector-bob", Amount: 150, Timestamp: now}
		require.NoError(t, s.UpsertBid(ctx, bid))
		bid2 := &schema.Bid{AuctionID: auction.ID, Bidder: "collector-bob", Amount: 200, Timestamp: now.Add(time.Minute)}
		require.NoError(t, s.UpsertBid(ctx, bid2))

		latest, err := s.GetBid(ctx, auction.ID, "collector-bob")
		require.NoError(t, err)
		require.NotNil(t, latest)
		assert.Equal(t, int64(200), latest.Amount)

		require.NoError(t, s.DeactivateAuction(ctx, auction.ID))
		got, err = s.GetAuction(ctx, auction.ID)
		require.NoError(t, err)
		assert.False(t, got.Active)
	})

	t.Run("expired auction scan", func(t *testing.T) {
		s := newStore(t)
		now := time.Now().UTC()

		past := &schema.Auction{
			AssetRef: "heritage-main:10", Seller: "a", StartingPrice: 1, HighestBidder: "a",
			StartTime: now.Add(-2 * time.Hour), EndTime: now.Add(-time.Hour), Active: true,
		}
		future := &schema.Auction{
			AssetRef: "heritage-main:11", Seller: "a", StartingPrice: 1, HighestBidder: "a",
			StartTime: now, EndTime: now.Add(time.Hour), Active: true,
		}
		closed := &schema.Auction{
			AssetRef: "heritage-main:12", Seller: "a", StartingPrice: 1, HighestBidder: "a",
			StartTime: now.Add(-2 * time.Hour), EndTime: now.Add(-time.Hour), Active: false,
		}
		require.NoError(t, s.CreateAuction(ctx, past))
		require.NoError(t, s.CreateAuction(ctx, future))
		require.NoError(t, s.CreateAuction(ctx, closed))

		expired, err := s.ListExpiredAuctions(ctx, now, 10)
		require.NoError(t, err)
		require.Len(t, expired, 1)
		assert.Equal(t, past.ID, expired[0].ID)
	})

	t.Run("asset lock exclusion", func(t *testing.T) {
		s := newStore(t)
		ref := domain.NewAssetRef("heritage-main", 5).String()

		require.NoError(t, s.AcquireAssetLock(ctx, &schema.AssetLock{
			AssetRef: ref, Track: schema.LockTrackListing, HolderID: 1,
		}))

		// Second acquisition fails regardless of track
		err := s.AcquireAssetLock(ctx, &schema.AssetLock{
			AssetRef: ref, Track: schema.LockTrackAuction, HolderID: 2,
		})
		assert.Error(t, err)

		lock, err := s.GetAssetLock(ctx, ref)
		require.NoError(t, err)
		require.NotNil(t, lock)
		assert.Equal(t, schema.LockTrackListing, lock.Track)

		require.NoError(t, s.ReleaseAssetLock(ctx, ref))
		lock, err = s.GetAssetLock(ctx, ref)
		require.NoError(t, err)
		assert.Nil(t, lock)

		// Re-acquirable after release
		require.NoError(t, s.AcquireAssetLock(ctx, &schema.AssetLock{
			AssetRef: ref, Track: schema.LockTrackAuction, HolderID: 2,
		}))
	})

	t.Run("atomic rolls back on error", func(t *testing.T) {
		s := newStore(t)

		asset := buildTestAsset(t, "heritage-main", 6, "curator-alice")
		boom := errors.New("boom")
		err := s.Atomic(ctx, func(tx Store) error {
			if err := tx.CreateAsset(ctx, asset, nil); err != nil {
				return err
			}
			if err := tx.SetSetting(ctx, "tx-test", "value"); err != nil {
				return err
			}
			return boom
		})
		require.ErrorIs(t, err, boom)

		got, err := s.GetAsset(ctx, asset.AssetRef)
		require.NoError(t, err)
		assert.Nil(t, got)

		_, found, err := s.GetSetting(ctx, "tx-test")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("atomic commits on success", func(t *testing.T) {
		s := newStore(t)

		asset := buildTestAsset(t, "heritage-main", 7, "curator-alice")
		err := s.Atomic(ctx, func(tx Store) error {
			return tx.CreateAsset(ctx, asset, []schema.ProvenanceRecord{
				buildTestProvenance("", "curator-alice", domain.ProvenanceKindTransfer),
			})
		})
		require.NoError(t, err)

		got, err := s.GetAsset(ctx, asset.AssetRef)
		require.NoError(t, err)
		require.NotNil(t, got)

		chain, err := s.ListProvenance(ctx, got.ID)
		require.NoError(t, err)
		assert.Len(t, chain, 1)
	})
}
