package schema

import "time"

// Setting keys for registry and exchange instance configuration
const (
	SettingRegistryAdmin  = "registry:admin"
	SettingRegistryName   = "registry:name"
	SettingRegistrySymbol = "registry:symbol"
	SettingRegistrySupply = "registry:total_supply"

	SettingExchangeAdmin    = "exchange:admin"
	SettingExchangeFeeBps   = "exchange:fee_bps"
	SettingExchangeListings = "exchange:total_listings"
	SettingExchangeAuctions = "exchange:total_auctions"
)

// KeyValueStore stores instance-level configuration and counters:
// administrator principals, collection name/symbol, fee basis points,
// supply and listing/auction counters.
type KeyValueStore struct {
	Key       string    `gorm:"primaryKey;type:text"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (KeyValueStore) TableName() string {
	return "key_value_store"
}
