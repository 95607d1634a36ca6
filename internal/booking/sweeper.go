package booking

import (
	"context"
	"log"
	"time"
)

// Sweeper periodically cancels pending bookings that outlived the
// expiration window.
type Sweeper struct {
	service  Service
	interval time.Duration
}

func NewSweeper(service Service, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Sweeper{service: service, interval: interval}
}

// Run blocks until ctx is cancelled, sweeping once per interval.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.service.AutoCancelExpired(ctx)
			if err != nil {
				log.Printf("booking sweep failed: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("booking sweep cancelled %d expired bookings", n)
			}
		}
	}
}
