package segment

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/segctl/segctl/internal/sink"
)

const DefaultChunkSize = 2 * 1024 * 1024 // per-request read/write buffer
const DefaultRequestTimeout = 10 * time.Second

type Config struct {
	ChunkSize      int64
	RequestTimeout time.Duration
	Progress       func(completed, total int64)
}

// Downloader copies a contiguous byte range of a remote segment into a local
// file, one bounded request at a time.
type Downloader struct {
	requester Requester
	cfg       Config
}

func NewDownloader(r Requester, cfg Config) *Downloader {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultChunkSize
	}
	if cfg.ChunkSize > math.MaxInt32 {
		// the wire protocol carries per-request offsets and lengths as int32
		cfg.ChunkSize = math.MaxInt32
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	return &Downloader{requester: r, cfg: cfg}
}

// Download reads [offset, offset+length) of the named segment into a freshly
// created file at outputPath and returns the number of bytes written. The
// first failed request aborts the download; a partially written file is left
// on disk for the operator to inspect or remove.
func (d *Downloader) Download(ctx context.Context, segmentName string, offset, length int64, outputPath string) (written int64, err error) {
	if offset < 0 || length < 0 {
		return 0, fmt.Errorf("%w: offset=%d length=%d", ErrInvalidArgument, offset, length)
	}
	out, err := sink.Create(outputPath)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := out.Release(); cerr != nil {
			log.Error().Str("op", "segment/download").Err(cerr).Msg("Failed to release output file")
			if err == nil {
				err = cerr
			}
		}
		if err != nil && written > 0 {
			log.Warn().Str("op", "segment/download").Msgf("Leaving %d partially downloaded bytes in %s", written, outputPath)
		}
	}()
	log.Debug().Str("op", "segment/download").Msgf("Downloading %d bytes from offset %d of %s into %s", length, offset, segmentName, outputPath)

	currentOffset := offset
	remaining := length
	for remaining > 0 {
		chunkSize := min(d.cfg.ChunkSize, remaining)
		data, rerr := d.readChunk(ctx, segmentName, currentOffset, chunkSize)
		if rerr != nil {
			return written, rerr
		}
		if len(data) == 0 {
			return written, fmt.Errorf("%w: segment=%s offset=%d remaining=%d", ErrStalledRead, segmentName, currentOffset, remaining)
		}
		if werr := out.Append(data); werr != nil {
			return written, werr
		}
		n := int64(len(data))
		currentOffset += n
		remaining -= n
		written += n
		if d.cfg.Progress != nil {
			d.cfg.Progress(length-remaining, length)
		}
	}
	return written, nil
}

func (d *Downloader) readChunk(ctx context.Context, segmentName string, offset, length int64) ([]byte, error) {
	reqCtx, cancel := context.WithTimeout(ctx, d.cfg.RequestTimeout)
	defer cancel()
	data, err := d.requester.ReadRange(reqCtx, segmentName, offset, length)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: segment=%s offset=%d after %v", ErrRequestTimeout, segmentName, offset, d.cfg.RequestTimeout)
		}
		return nil, fmt.Errorf("%w: segment=%s offset=%d: %w", ErrRemote, segmentName, offset, err)
	}
	return data, nil
}
