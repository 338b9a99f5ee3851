package segment

import "context"

// Requester issues a single bounded-size read against a segment. The returned
// slice holds the bytes actually available at offset, which may be fewer than
// length near the end of a segment's written data.
type Requester interface {
	ReadRange(ctx context.Context, segmentName string, offset, length int64) ([]byte, error)
}
