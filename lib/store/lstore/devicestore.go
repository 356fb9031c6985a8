package lstore

import (
	"slices"
	"strings"
	"sync"

	"github.com/IEcheandia/scanmaster-sub023/lib/codec"
	"github.com/IEcheandia/scanmaster-sub023/lib/keyvalue"
	"github.com/IEcheandia/scanmaster-sub023/lib/store"
	"github.com/cockroachdb/errors"
)

type deviceStoreImpl struct {
	mu      sync.RWMutex
	entries map[string]keyvalue.KeyValue
}

// NewLocalDeviceStore creates a device store holding a copy of the given entries.
func NewLocalDeviceStore(entries ...keyvalue.KeyValue) (store.IDeviceStore, error) {
	s := &deviceStoreImpl{entries: make(map[string]keyvalue.KeyValue, len(entries))}
	for _, kv := range entries {
		c, err := cloneKeyValue(kv)
		if err != nil {
			return nil, err
		}
		s.entries[kv.Info().Key] = c
	}
	return s, nil
}

// --------------------------------------------------------------------------
// Interface Methods (docu see store/interface.go)
// --------------------------------------------------------------------------

func (s *deviceStoreImpl) SetKeyValue(kv keyvalue.KeyValue) error {
	if kv == nil {
		return errors.Wrap(codec.ErrNilValue, "set key-value")
	}
	key := kv.Info().Key

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.entries[key]
	if !ok {
		if err := kv.Validate(); err != nil {
			return err
		}
		c, err := cloneKeyValue(kv)
		if err != nil {
			return err
		}
		s.entries[key] = c
		Logger.Debugf("added key %s", key)
		return nil
	}

	if current.Info().ReadOnly {
		return errors.Wrapf(keyvalue.ErrReadOnly, "key %s", key)
	}
	if err := current.CopyValueFrom(kv); err != nil {
		return err
	}
	Logger.Debugf("set key %s to %s", key, current.Text())
	return nil
}

func (s *deviceStoreImpl) GetKeyValue(key string) (keyvalue.KeyValue, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	current, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}
	c, err := cloneKeyValue(current)
	if err != nil {
		return nil, false, err
	}
	return c, true, nil
}

func (s *deviceStoreImpl) ListKeyValues() ([]keyvalue.KeyValue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]keyvalue.KeyValue, 0, len(s.entries))
	for _, kv := range s.entries {
		c, err := cloneKeyValue(kv)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b keyvalue.KeyValue) int {
		return strings.Compare(a.Info().Key, b.Info().Key)
	})
	return out, nil
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// cloneKeyValue copies an entry through its wire form.
func cloneKeyValue(kv keyvalue.KeyValue) (keyvalue.KeyValue, error) {
	buf := wireBufferPool.Get()
	defer wireBufferPool.Put(buf)

	if err := keyvalue.Strategy.Write(buf, kv); err != nil {
		return nil, err
	}
	if err := buf.Finalize(); err != nil {
		return nil, err
	}
	return keyvalue.Strategy.Read(buf)
}
