package lstore

import (
	"sync/atomic"

	"github.com/IEcheandia/scanmaster-sub023/lib/codec"
	"github.com/IEcheandia/scanmaster-sub023/lib/overlay"
	"github.com/IEcheandia/scanmaster-sub023/lib/store"
	"github.com/cockroachdb/errors"
)

type storedFrame struct {
	imageNumber uint32
	raw         []byte
}

type overlayStoreImpl struct {
	latest atomic.Pointer[storedFrame]
}

// NewLocalOverlayStore creates an overlay store without a frame.
func NewLocalOverlayStore() store.IOverlayStore {
	return &overlayStoreImpl{}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see store/interface.go)
// --------------------------------------------------------------------------

func (s *overlayStoreImpl) PublishOverlay(f *overlay.Frame) error {
	if f == nil {
		return errors.Wrap(codec.ErrNilValue, "publish overlay")
	}
	raw, err := codec.Marshal(0, f)
	if err != nil {
		return err
	}
	next := &storedFrame{imageNumber: f.ImageNumber, raw: raw}
	for {
		current := s.latest.Load()
		if current != nil && current.imageNumber > next.imageNumber {
			return errors.Wrapf(store.ErrStaleFrame, "image %d, current %d", next.imageNumber, current.imageNumber)
		}
		if s.latest.CompareAndSwap(current, next) {
			Logger.Debugf("published overlay for image %d (%d shapes)", f.ImageNumber, f.ShapeCount())
			return nil
		}
	}
}

func (s *overlayStoreImpl) LatestOverlay() (*overlay.Frame, bool, error) {
	current := s.latest.Load()
	if current == nil {
		return nil, false, nil
	}
	f, err := codec.Unmarshal[overlay.Frame](current.raw)
	if err != nil {
		return nil, false, err
	}
	return f, true, nil
}
