package cmd

import (
	"fmt"
	"os"

	"github.com/IEcheandia/scanmaster-sub023/cmd/device"
	"github.com/IEcheandia/scanmaster-sub023/cmd/graph"
	"github.com/IEcheandia/scanmaster-sub023/cmd/overlay"
	"github.com/IEcheandia/scanmaster-sub023/cmd/serve"
	"github.com/IEcheandia/scanmaster-sub023/cmd/util"
	"github.com/spf13/cobra"
)

const (
	Version = "0.4.2"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "scanmaster",
		Short: "scanmaster graph, device and overlay service",
		Long: fmt.Sprintf(`scanmaster (v%s)

Serves processing graphs, device key-values and overlay frames
using a compact, checksummed binary message format.`, Version),
		SilenceUsage: true,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of scanmaster",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("scanmaster v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(serve.ServeCmd)
	RootCmd.AddCommand(graph.GraphCommands)
	RootCmd.AddCommand(device.DeviceCommands)
	RootCmd.AddCommand(overlay.OverlayCommands)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "transport"
	RootCmd.PersistentFlags().String(key, "tcp", util.WrapString("transport to use (tcp, unix, http)"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
