package messaging

import (
	"context"
	"errors"

	"github.com/perma-museum/custodian/internal/domain"
)

type fanout struct {
	publishers []Publisher
}

// NewFanout returns a Publisher that forwards every event to each of the
// given publishers. All publishers are attempted; the joined error carries
// every individual failure.
func NewFanout(publishers ...Publisher) Publisher {
	return &fanout{publishers: publishers}
}

func (f *fanout) PublishEvent(ctx context.Context, event *domain.CustodyEvent) error {
	var errs []error
	for _, p := range f.publishers {
		if err := p.PublishEvent(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f *fanout) Close() {
	for _, p := range f.publishers {
		p.Close()
	}
}
