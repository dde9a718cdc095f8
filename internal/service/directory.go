package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/comandahq/comanda/internal/model"
	"github.com/comandahq/comanda/internal/repository"
	"github.com/comandahq/comanda/pkg/logger"
)

// DirectoryReplicator lands client-directory upserts asynchronously so the
// order-create path never waits on (or rolls back with) the directory
// write.
type DirectoryReplicator struct {
	clients repository.ClientRepository
	ch      chan model.Client
}

func NewDirectoryReplicator(clients repository.ClientRepository, queueSize int) *DirectoryReplicator {
	if queueSize <= 0 {
		queueSize = 10000
	}
	return &DirectoryReplicator{clients: clients, ch: make(chan model.Client, queueSize)}
}

// Start launches the worker pool and returns a stop function that waits
// briefly for the queue to drain.
func (r *DirectoryReplicator) Start(workers int) func(context.Context) error {
	if workers <= 0 {
		workers = 2
	}
	stopCh := make(chan struct{})
	for i := 0; i < workers; i++ {
		go func() {
			for {
				select {
				case client := <-r.ch:
					ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					if err := r.clients.Upsert(ctx, &client); err != nil {
						logger.Warn("directory upsert failed",
							zap.String("restaurant", client.RestaurantID),
							zap.String("phone", client.Phone),
							zap.Error(err))
					}
					cancel()
				case <-stopCh:
					return
				}
			}
		}()
	}
	return func(ctx context.Context) error {
		close(stopCh)
		timeout := time.After(2 * time.Second)
		for {
			select {
			case <-timeout:
				return nil
			default:
				if len(r.ch) == 0 {
					return nil
				}
				time.Sleep(50 * time.Millisecond)
			}
		}
	}
}

func (r *DirectoryReplicator) Enqueue(client model.Client) {
	select {
	case r.ch <- client:
	default:
		logger.Warn("directory queue full, drop upsert",
			zap.String("restaurant", client.RestaurantID),
			zap.String("phone", client.Phone))
	}
}

// QueueLen returns the current queue length (sampled).
func (r *DirectoryReplicator) QueueLen() int { return len(r.ch) }
