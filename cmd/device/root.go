package device

import (
	"github.com/IEcheandia/scanmaster-sub023/cmd/util"
	"github.com/IEcheandia/scanmaster-sub023/lib/bootstrap"
	"github.com/IEcheandia/scanmaster-sub023/lib/store"
	"github.com/IEcheandia/scanmaster-sub023/rpc/client"
	"github.com/spf13/cobra"
)

var (
	rpcStore store.IDeviceStore

	// DeviceCommands represents the device command group
	DeviceCommands = &cobra.Command{
		Use:               "device",
		Short:             "Read and write device key-values",
		PersistentPreRunE: setupDeviceClient,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitConfig)

	// Add common RPC flags, the device is served under interface 2 by default
	util.SetupRPCClientFlags(DeviceCommands, 2)

	// Add subcommands
	DeviceCommands.AddCommand(getCmd)
	DeviceCommands.AddCommand(setCmd)
	DeviceCommands.AddCommand(listCmd)
}

// setupDeviceClient initializes the RPC device store client
func setupDeviceClient(cmd *cobra.Command, _ []string) error {
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

	rpcStore, err = client.NewRPCDeviceStore(
		util.GetInterfaceID(),
		*util.GetClientConfig(),
		t,
	)

	return err
}
