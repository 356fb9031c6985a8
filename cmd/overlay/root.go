package overlay

import (
	"fmt"

	"github.com/IEcheandia/scanmaster-sub023/cmd/util"
	"github.com/IEcheandia/scanmaster-sub023/lib/bootstrap"
	"github.com/IEcheandia/scanmaster-sub023/lib/store"
	"github.com/IEcheandia/scanmaster-sub023/rpc/client"
	"github.com/spf13/cobra"
)

var (
	rpcStore store.IOverlayStore

	// OverlayCommands represents the overlay command group
	OverlayCommands = &cobra.Command{
		Use:               "overlay",
		Short:             "Inspect the published overlay frames",
		PersistentPreRunE: setupOverlayClient,
	}

	latestCmd = &cobra.Command{
		Use:   "latest",
		Short: "Prints the layers and shapes of the latest frame",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, ok, err := rpcStore.LatestOverlay()
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("no frame published")
				return nil
			}
			fmt.Printf("image %d\n", f.ImageNumber)
			for _, l := range f.Layers {
				fmt.Printf("  layer %s (%d shapes)\n", l.Name, len(l.Shapes))
				for _, s := range l.Shapes {
					if s == nil {
						continue
					}
					b := s.Bounds()
					fmt.Printf("    %s at %d,%d %dx%d\n", s.Kind(), b.X, b.Y, b.Width, b.Height)
				}
			}
			return nil
		},
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitConfig)

	// Add common RPC flags, overlays are served under interface 3 by default
	util.SetupRPCClientFlags(OverlayCommands, 3)

	OverlayCommands.AddCommand(latestCmd)
}

// setupOverlayClient initializes the RPC overlay store client
func setupOverlayClient(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}
	if err := bootstrap.Bootstrap(); err != nil {
		return err
	}

	t, err := util.GetTransport()
	if err != nil {
		return err
	}

	rpcStore, err = client.NewRPCOverlayStore(
		util.GetInterfaceID(),
		*util.GetClientConfig(),
		t,
	)

	return err
}
