// Package testing provides test doubles for the feed package.
package testing

import (
	"context"
	"sync"
)

// Frame is one tick's worth of feed content.
type Frame struct {
	Global      []byte
	Enclaves    []byte
	GlobalErr   error
	EnclavesErr error
}

// StaticReader serves a scripted sequence of frames, one per tick. After the
// last frame it keeps returning the final frame, so a single-frame reader
// behaves as a constant feed.
type StaticReader struct {
	Frames []Frame

	mu          sync.Mutex
	globalIdx   int
	enclavesIdx int
}

// NewStaticReader creates a reader serving a single constant frame.
func NewStaticReader(global, enclaves []byte) *StaticReader {
	return &StaticReader{Frames: []Frame{{Global: global, Enclaves: enclaves}}}
}

// ReadGlobal returns the current frame's global feed and advances the global
// cursor.
func (r *StaticReader) ReadGlobal(_ context.Context) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	frame := r.frameAt(r.globalIdx)
	r.globalIdx++
	return frame.Global, frame.GlobalErr
}

// ReadEnclaves returns the current frame's enclave feed and advances the
// enclave cursor.
func (r *StaticReader) ReadEnclaves(_ context.Context) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	frame := r.frameAt(r.enclavesIdx)
	r.enclavesIdx++
	return frame.Enclaves, frame.EnclavesErr
}

func (r *StaticReader) frameAt(idx int) Frame {
	if len(r.Frames) == 0 {
		return Frame{}
	}
	if idx >= len(r.Frames) {
		idx = len(r.Frames) - 1
	}
	return r.Frames[idx]
}
