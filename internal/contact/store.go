package contact

import "context"

// Store persists contact submissions. Writes are best-effort from the
// pipeline's perspective: the service logs and swallows store errors.
type Store interface {
	Insert(ctx context.Context, sub *Submission) error
}
