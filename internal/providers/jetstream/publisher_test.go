package jetstream

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/perma-museum/custodian/internal/domain"
)

func TestBuildSubject(t *testing.T) {
	p := &publisher{}

	t.Run("asset event", func(t *testing.T) {
		subject := p.buildSubject(&domain.CustodyEvent{
			EventType: domain.EventTypeSold,
			AssetRef:  domain.NewAssetRef("heritage-main", 42),
		})
		assert.Equal(t, "custody.heritage-main.sold", subject)
	})

	t.Run("admin transfer publishes under the registry segment", func(t *testing.T) {
		subject := p.buildSubject(&domain.CustodyEvent{
			EventType: domain.EventTypeAdminTransferred,
		})
		assert.Equal(t, "custody.registry.admin_transferred", subject)
	})

	t.Run("malformed ref falls back to unknown", func(t *testing.T) {
		subject := p.buildSubject(&domain.CustodyEvent{
			EventType: domain.EventTypeTransferred,
			AssetRef:  "garbage",
		})
		assert.Equal(t, "custody.unknown.transferred", subject)
	})
}
