package messaging_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"

	"github.com/perma-museum/custodian/internal/domain"
	"github.com/perma-museum/custodian/internal/messaging"
	"github.com/perma-museum/custodian/internal/mocks"
)

func testEvent() *domain.CustodyEvent {
	return &domain.CustodyEvent{
		EventID:   ulid.Make().String(),
		EventType: domain.EventTypeTransferred,
		AssetRef:  "louvre-antiquities:7",
		From:      "louvre",
		To:        "met",
		Timestamp: time.Now().UTC(),
	}
}

func TestFanout_PublishEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	event := testEvent()

	t.Run("all publishers receive the event", func(t *testing.T) {
		first := mocks.NewMockPublisher(ctrl)
		second := mocks.NewMockPublisher(ctrl)
		first.EXPECT().PublishEvent(gomock.Any(), event).Return(nil)
		second.EXPECT().PublishEvent(gomock.Any(), event).Return(nil)

		fanout := messaging.NewFanout(first, second)
		assert.NoError(t, fanout.PublishEvent(context.Background(), event))
	})

	t.Run("one failure does not stop the others", func(t *testing.T) {
		failed := errors.New("broker unavailable")
		first := mocks.NewMockPublisher(ctrl)
		second := mocks.NewMockPublisher(ctrl)
		first.EXPECT().PublishEvent(gomock.Any(), event).Return(failed)
		second.EXPECT().PublishEvent(gomock.Any(), event).Return(nil)

		fanout := messaging.NewFanout(first, second)
		err := fanout.PublishEvent(context.Background(), event)
		assert.ErrorIs(t, err, failed)
	})

	t.Run("no publishers is a no-op", func(t *testing.T) {
		fanout := messaging.NewFanout()
		assert.NoError(t, fanout.PublishEvent(context.Background(), event))
	})
}

func TestFanout_Close(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	first := mocks.NewMockPublisher(ctrl)
	second := mocks.NewMockPublisher(ctrl)
	first.EXPECT().Close()
	second.EXPECT().Close()

	messaging.NewFanout(first, second).Close()
}
