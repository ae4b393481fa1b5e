package ledgerd_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perma-museum/custodian/internal/domain"
	"github.com/perma-museum/custodian/internal/mocks"
	"github.com/perma-museum/custodian/internal/providers/ledgerd"
)

const testBaseURL = "https://ledgerd.example.com"

func respondOK(ok bool) func(context.Context, string, interface{}, interface{}) error {
	return func(_ context.Context, _ string, _ interface{}, result interface{}) error {
		data, err := json.Marshal(map[string]interface{}{"tx_id": "tx-1", "ok": ok})
		if err != nil {
			return err
		}
		return json.Unmarshal(data, result)
	}
}

func TestClient_Transfer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTPClient := mocks.NewMockHTTPClient(ctrl)
	client := ledgerd.NewClient(mockHTTPClient, testBaseURL)

	ctx := context.Background()
	mockHTTPClient.EXPECT().
		PostJSON(ctx, testBaseURL+"/v1/transfers", gomock.Any(), gomock.Any()).
		DoAndReturn(respondOK(true))

	err := client.Transfer(ctx, "buyer", "seller", 950, "sale")
	require.NoError(t, err)
}

func TestClient_Transfer_Rejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTPClient := mocks.NewMockHTTPClient(ctrl)
	client := ledgerd.NewClient(mockHTTPClient, testBaseURL)

	ctx := context.Background()
	mockHTTPClient.EXPECT().
		PostJSON(ctx, testBaseURL+"/v1/transfers", gomock.Any(), gomock.Any()).
		DoAndReturn(respondOK(false))

	err := client.Transfer(ctx, "buyer", "seller", 950, "sale")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rejected transfer")
}

func TestClient_EscrowLifecycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTPClient := mocks.NewMockHTTPClient(ctrl)
	client := ledgerd.NewClient(mockHTTPClient, testBaseURL)

	ctx := context.Background()
	ref := domain.NewAssetRef("louvre-antiquities", 7)

	mockHTTPClient.EXPECT().
		PostJSON(ctx, testBaseURL+"/v1/escrows", gomock.Any(), gomock.Any()).
		DoAndReturn(respondOK(true))
	require.NoError(t, client.Escrow(ctx, "bidder-a", ref, 500))

	mockHTTPClient.EXPECT().
		PostJSON(ctx, testBaseURL+"/v1/escrows/refund", gomock.Any(), gomock.Any()).
		DoAndReturn(respondOK(true))
	require.NoError(t, client.RefundEscrow(ctx, ref, "bidder-a", 500))

	mockHTTPClient.EXPECT().
		PostJSON(ctx, testBaseURL+"/v1/escrows/release", gomock.Any(), gomock.Any()).
		DoAndReturn(respondOK(true))
	require.NoError(t, client.ReleaseEscrow(ctx, ref, "bidder-b", "seller", 600))
}

func TestClient_NetworkError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTPClient := mocks.NewMockHTTPClient(ctrl)
	client := ledgerd.NewClient(mockHTTPClient, testBaseURL)

	ctx := context.Background()
	mockHTTPClient.EXPECT().
		PostJSON(ctx, gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("connection refused"))

	err := client.Escrow(ctx, "bidder-a", domain.NewAssetRef("louvre-antiquities", 7), 500)
	require.Error(t, err)
}
