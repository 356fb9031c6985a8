// Package bootstrap fills and seals the polymorphic families of the system.
//
// Bootstrap must run once, on a single goroutine, before any message is
// encoded or decoded. After it returned successfully the families are
// read-only and can be used from any goroutine.
package bootstrap

import (
	"sync"

	"github.com/IEcheandia/scanmaster-sub023/lib/graph"
	"github.com/IEcheandia/scanmaster-sub023/lib/keyvalue"
	"github.com/IEcheandia/scanmaster-sub023/lib/overlay"
	"github.com/cockroachdb/errors"
	"github.com/lni/dragonboat/v4/logger"
)

var Logger = logger.GetLogger("bootstrap")

var (
	once    sync.Once
	onceErr error
)

// Bootstrap registers all variants of the filter parameter, overlay shape and
// key-value families and seals them. Repeated calls return the result of the
// first call.
func Bootstrap() error {
	once.Do(func() {
		onceErr = run()
	})
	return onceErr
}

// MustBootstrap is like Bootstrap but panics on error.
func MustBootstrap() {
	if err := Bootstrap(); err != nil {
		panic(err)
	}
}

func run() error {
	if err := graph.RegisterParameters(graph.Parameters); err != nil {
		return errors.Wrap(err, "register filter parameters")
	}
	if err := overlay.RegisterShapes(overlay.Shapes); err != nil {
		return errors.Wrap(err, "register overlay shapes")
	}
	if err := keyvalue.RegisterKeyValues(keyvalue.KeyValues); err != nil {
		return errors.Wrap(err, "register key-values")
	}

	graph.Parameters.Seal()
	overlay.Shapes.Seal()
	keyvalue.KeyValues.Seal()

	Logger.Infof("sealed families: %s (%d), %s (%d), %s (%d)",
		graph.Parameters.Name(), len(graph.Parameters.Tags()),
		overlay.Shapes.Name(), len(overlay.Shapes.Tags()),
		keyvalue.KeyValues.Name(), len(keyvalue.KeyValues.Tags()))
	return nil
}
