package graph

import (
	"github.com/IEcheandia/scanmaster-sub023/cmd/util"
	"github.com/IEcheandia/scanmaster-sub023/lib/bootstrap"
	"github.com/IEcheandia/scanmaster-sub023/lib/store"
	"github.com/IEcheandia/scanmaster-sub023/rpc/client"
	"github.com/spf13/cobra"
)

var (
	rpcStore store.IGraphStore

	// GraphCommands represents the graph command group
	GraphCommands = &cobra.Command{
		Use:               "graph",
		Short:             "Inspect stored graphs and update filter parameters",
		PersistentPreRunE: setupGraphClient,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitConfig)

	// Add common RPC flags, graphs are served under interface 1 by default
	util.SetupRPCClientFlags(GraphCommands, 1)

	// Add subcommands
	GraphCommands.AddCommand(listCmd)
	GraphCommands.AddCommand(getCmd)
	GraphCommands.AddCommand(paramsCmd)
	GraphCommands.AddCommand(setParamCmd)
	GraphCommands.AddCommand(deleteCmd)
}

// setupGraphClient initializes the RPC graph store client
func setupGraphClient(cmd *cobra.Command, _ []string) error {
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

	rpcStore, err = client.NewRPCGraphStore(
		util.GetInterfaceID(),
		*util.GetClientConfig(),
		t,
	)

	return err
}
