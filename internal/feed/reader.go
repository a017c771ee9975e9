// Package feed reads the kernel-exposed EPC text feeds.
//
// Two feeds exist: a global counters feed and a per-enclave listing. Both
// are local in-memory files exposed by the driver, so reads are cheap, but
// the reader still bounds every read with a timeout: a wedged driver must
// never stall the dashboard's tick loop.
package feed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/enclaveops/epctop/internal/logger"
)

// Default feed locations exposed by the driver.
const (
	DefaultGlobalPath   = "/proc/sgx_stats"
	DefaultEnclavesPath = "/proc/sgx_enclaves"
)

// DefaultReadTimeout bounds a single feed read. Local proc reads complete in
// microseconds; anything near this limit means the driver is wedged.
const DefaultReadTimeout = 500 * time.Millisecond

// ErrFeedUnavailable marks a feed that does not exist: the monitored
// subsystem (or its driver) is not present. Distinct from transient I/O
// failures like permission errors, which warrant different user guidance.
var ErrFeedUnavailable = errors.New("feed unavailable")

// IsUnavailable reports whether err indicates a missing feed.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrFeedUnavailable)
}

// Reader provides the raw text of both feeds. Implementations must honor
// context cancellation and never block indefinitely.
type Reader interface {
	ReadGlobal(ctx context.Context) ([]byte, error)
	ReadEnclaves(ctx context.Context) ([]byte, error)
}

// FileReader reads the feeds from the filesystem.
type FileReader struct {
	globalPath   string
	enclavesPath string
	timeout      time.Duration
	log          logger.Logger
}

// NewFileReader creates a reader for the given feed paths. Empty paths fall
// back to the driver defaults.
func NewFileReader(globalPath, enclavesPath string) *FileReader {
	if globalPath == "" {
		globalPath = DefaultGlobalPath
	}
	if enclavesPath == "" {
		enclavesPath = DefaultEnclavesPath
	}
	return &FileReader{
		globalPath:   globalPath,
		enclavesPath: enclavesPath,
		timeout:      DefaultReadTimeout,
		log:          logger.Default(),
	}
}

// SetTimeout sets the per-read timeout.
func (r *FileReader) SetTimeout(timeout time.Duration) {
	if timeout > 0 {
		r.timeout = timeout
	}
}

// SetLogger sets the logger used for read diagnostics.
func (r *FileReader) SetLogger(log logger.Logger) {
	if log != nil {
		r.log = log
	}
}

// ReadGlobal reads the global counters feed.
func (r *FileReader) ReadGlobal(ctx context.Context) ([]byte, error) {
	return r.read(ctx, r.globalPath)
}

// ReadEnclaves reads the per-enclave listing feed.
func (r *FileReader) ReadEnclaves(ctx context.Context) ([]byte, error) {
	return r.read(ctx, r.enclavesPath)
}

// read performs one bounded feed read.
func (r *FileReader) read(ctx context.Context, path string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	type result struct {
		data []byte
		err  error
	}
	resultCh := make(chan result, 1)

	go func() {
		data, err := os.ReadFile(path)
		resultCh <- result{data, err}
	}()

	select {
	case <-ctx.Done():
		r.log.Warn("read of %s timed out", path)
		return nil, fmt.Errorf("reading %s: %w", path, ctx.Err())
	case res := <-resultCh:
		if res.err != nil {
			if os.IsNotExist(res.err) {
				r.log.Debug("feed %s not present", path)
				return nil, fmt.Errorf("%w: %s", ErrFeedUnavailable, path)
			}
			return nil, fmt.Errorf("reading %s: %w", path, res.err)
		}
		return res.data, nil
	}
}
