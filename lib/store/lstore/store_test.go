package lstore

import (
	"os"
	"testing"

	"github.com/IEcheandia/scanmaster-sub023/lib/bootstrap"
	"github.com/IEcheandia/scanmaster-sub023/lib/graph"
	"github.com/IEcheandia/scanmaster-sub023/lib/keyvalue"
	"github.com/IEcheandia/scanmaster-sub023/lib/overlay"
	"github.com/IEcheandia/scanmaster-sub023/lib/store"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestMain(m *testing.M) {
	bootstrap.MustBootstrap()
	os.Exit(m.Run())
}

func newGraph(threshold int32) *graph.Graph {
	comp := graph.Component{ID: uuid.New(), Filename: "libFilter.so"}
	return &graph.Graph{
		ID:         uuid.New(),
		Components: []graph.Component{comp},
		Filters: []graph.Filter{{
			ID:         uuid.New(),
			Name:       "threshold",
			Component:  comp.ID,
			Parameters: []graph.FilterParameter{graph.NewParameter("threshold", threshold)},
		}},
	}
}

// --------------------------------------------------------------------------
// Graph Store
// --------------------------------------------------------------------------

func TestGraphStorePutGet(t *testing.T) {
	s := NewLocalGraphStore()
	g := newGraph(42)

	require.NoError(t, s.PutGraph(g))

	got, ok, err := s.GetGraph(g.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, g, got)

	// returned graphs are owned by the caller
	got.Filters[0].Name = "changed"
	again, _, err := s.GetGraph(g.ID)
	require.NoError(t, err)
	assert.Equal(t, "threshold", again.Filters[0].Name)

	_, ok, err = s.GetGraph(uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGraphStoreListDelete(t *testing.T) {
	s := NewLocalGraphStore()
	for range 5 {
		require.NoError(t, s.PutGraph(newGraph(1)))
	}
	ids, err := s.ListGraphs()
	require.NoError(t, err)
	require.Len(t, ids, 5)
	for i := 1; i < len(ids); i++ {
		assert.Less(t, ids[i-1].String(), ids[i].String())
	}

	require.NoError(t, s.DeleteGraph(ids[0]))
	require.NoError(t, s.DeleteGraph(uuid.New()))
	ids, err = s.ListGraphs()
	require.NoError(t, err)
	assert.Len(t, ids, 4)
}

func TestGraphStorePutNil(t *testing.T) {
	assert.Error(t, NewLocalGraphStore().PutGraph(nil))
}

func TestGraphStoreSetParameters(t *testing.T) {
	s := NewLocalGraphStore()
	g := newGraph(42)
	require.NoError(t, s.PutGraph(g))

	update := graph.FilterParametersContainer{
		FilterID:   g.Filters[0].ID,
		Parameters: []graph.FilterParameter{graph.NewParameter("threshold", int32(7))},
	}
	require.NoError(t, s.SetParameters(g.ID, []graph.FilterParametersContainer{update}))

	got, _, err := s.GetGraph(g.ID)
	require.NoError(t, err)
	assert.Equal(t, int32(7), got.Filters[0].Parameters[0].Any())

	t.Run("unknown graph", func(t *testing.T) {
		err := s.SetParameters(uuid.New(), []graph.FilterParametersContainer{update})
		assert.True(t, errors.Is(err, store.ErrGraphNotFound))
	})

	t.Run("failed update leaves graph unchanged", func(t *testing.T) {
		changed := graph.FilterParametersContainer{
			FilterID:   g.Filters[0].ID,
			Parameters: []graph.FilterParameter{graph.NewParameter("threshold", int32(9))},
		}
		bad := []graph.FilterParametersContainer{
			changed,
			{FilterID: uuid.New(), Parameters: changed.Parameters},
		}
		assert.Error(t, s.SetParameters(g.ID, bad))
		got, _, err := s.GetGraph(g.ID)
		require.NoError(t, err)
		assert.Equal(t, int32(7), got.Filters[0].Parameters[0].Any())
	})
}

func TestGraphStoreConcurrent(t *testing.T) {
	s := NewLocalGraphStore()
	g := newGraph(0)
	require.NoError(t, s.PutGraph(g))

	var eg errgroup.Group
	for i := range 32 {
		eg.Go(func() error {
			update := graph.FilterParametersContainer{
				FilterID:   g.Filters[0].ID,
				Parameters: []graph.FilterParameter{graph.NewParameter("threshold", int32(i))},
			}
			if err := s.SetParameters(g.ID, []graph.FilterParametersContainer{update}); err != nil {
				return err
			}
			_, _, err := s.GetGraph(g.ID)
			return err
		})
	}
	require.NoError(t, eg.Wait())
}

func TestGraphStoreSetParametersDoesNotResurrect(t *testing.T) {
	s := NewLocalGraphStore()

	for range 200 {
		g := newGraph(0)
		require.NoError(t, s.PutGraph(g))
		update := graph.FilterParametersContainer{
			FilterID:   g.Filters[0].ID,
			Parameters: []graph.FilterParameter{graph.NewParameter("threshold", int32(5))},
		}

		var eg errgroup.Group
		eg.Go(func() error {
			err := s.SetParameters(g.ID, []graph.FilterParametersContainer{update})
			if err != nil && !errors.Is(err, store.ErrGraphNotFound) {
				return err
			}
			return nil
		})
		eg.Go(func() error {
			return s.DeleteGraph(g.ID)
		})
		require.NoError(t, eg.Wait())

		// whatever the order, the delete wins
		_, ok, err := s.GetGraph(g.ID)
		require.NoError(t, err)
		require.False(t, ok)
	}
}

func TestGraphStoreSetParametersKeepsNewerPut(t *testing.T) {
	s := NewLocalGraphStore()

	for range 200 {
		g := newGraph(0)
		require.NoError(t, s.PutGraph(g))
		update := graph.FilterParametersContainer{
			FilterID:   g.Filters[0].ID,
			Parameters: []graph.FilterParameter{graph.NewParameter("threshold", int32(5))},
		}
		newer, err := g.Clone()
		require.NoError(t, err)
		newer.PathComponents = "v2"

		var eg errgroup.Group
		eg.Go(func() error {
			return s.SetParameters(g.ID, []graph.FilterParametersContainer{update})
		})
		eg.Go(func() error {
			return s.PutGraph(newer)
		})
		require.NoError(t, eg.Wait())

		got, ok, err := s.GetGraph(g.ID)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "v2", got.PathComponents)
	}
}

// --------------------------------------------------------------------------
// Device Store
// --------------------------------------------------------------------------

func newDevice(t *testing.T) store.IDeviceStore {
	t.Helper()
	exposure := keyvalue.New[int32]("ExposureTime", 100, 1, 1000)
	serial := keyvalue.New[string]("SerialNumber", "SM-0001", "", "")
	serial.ReadOnly = true
	s, err := NewLocalDeviceStore(exposure, serial)
	require.NoError(t, err)
	return s
}

func TestDeviceStoreSetGet(t *testing.T) {
	s := newDevice(t)

	require.NoError(t, s.SetKeyValue(keyvalue.New[int32]("ExposureTime", 500, 0, 0)))
	kv, ok, err := s.GetKeyValue("ExposureTime")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int32(500), kv.Any())

	// range of the stored entry applies
	err = s.SetKeyValue(keyvalue.New[int32]("ExposureTime", 5000, 0, 0))
	assert.True(t, errors.Is(err, keyvalue.ErrOutOfRange))

	err = s.SetKeyValue(keyvalue.New[float64]("ExposureTime", 1, 0, 0))
	assert.Error(t, err)

	err = s.SetKeyValue(keyvalue.New[string]("SerialNumber", "other", "", ""))
	assert.True(t, errors.Is(err, keyvalue.ErrReadOnly))

	_, ok, err = s.GetKeyValue("missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDeviceStoreInsert(t *testing.T) {
	s := newDevice(t)

	require.NoError(t, s.SetKeyValue(keyvalue.New[bool]("LedEnable", true, false, false)))
	assert.Error(t, s.SetKeyValue(keyvalue.New[uint32]("Gain", 20, 0, 10)))

	kvs, err := s.ListKeyValues()
	require.NoError(t, err)
	keys := make([]string, 0, len(kvs))
	for _, kv := range kvs {
		keys = append(keys, kv.Info().Key)
	}
	assert.Equal(t, []string{"ExposureTime", "LedEnable", "SerialNumber"}, keys)
}

func TestDeviceStoreReturnsCopies(t *testing.T) {
	s := newDevice(t)
	kv, _, err := s.GetKeyValue("ExposureTime")
	require.NoError(t, err)
	require.NoError(t, kv.SetText("7"))

	again, _, err := s.GetKeyValue("ExposureTime")
	require.NoError(t, err)
	assert.Equal(t, int32(100), again.Any())
}

// --------------------------------------------------------------------------
// Overlay Store
// --------------------------------------------------------------------------

func newFrame(image uint32) *overlay.Frame {
	return &overlay.Frame{
		ImageNumber: image,
		Layers: []overlay.Layer{{
			Name: "result",
			Shapes: []overlay.Shape{
				&overlay.Point{X: 1, Y: 2, Color: overlay.Red},
				nil,
			},
		}},
	}
}

func TestOverlayStore(t *testing.T) {
	s := NewLocalOverlayStore()

	_, ok, err := s.LatestOverlay()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.PublishOverlay(newFrame(3)))
	require.NoError(t, s.PublishOverlay(newFrame(3)))
	require.NoError(t, s.PublishOverlay(newFrame(5)))

	err = s.PublishOverlay(newFrame(4))
	assert.True(t, errors.Is(err, store.ErrStaleFrame))

	f, ok, err := s.LatestOverlay()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, newFrame(5), f)

	assert.Error(t, s.PublishOverlay(nil))
}
