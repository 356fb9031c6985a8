package serve

import (
	"fmt"
	"strings"

	cmdUtil "github.com/IEcheandia/scanmaster-sub023/cmd/util"
	"github.com/IEcheandia/scanmaster-sub023/lib/bootstrap"
	"github.com/IEcheandia/scanmaster-sub023/lib/keyvalue"
	"github.com/IEcheandia/scanmaster-sub023/lib/store/lstore"
	"github.com/IEcheandia/scanmaster-sub023/lib/value"
	"github.com/IEcheandia/scanmaster-sub023/rpc/common"
	"github.com/IEcheandia/scanmaster-sub023/rpc/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	serveCmdConfig = &common.ServerConfig{}
	deviceEntries  []keyvalue.KeyValue
	ServeCmd       = &cobra.Command{
		Use:     "serve",
		Short:   "Start the scanmaster server",
		Long:    `Start the scanmaster server with the specified configuration. The configuration can be set via command line flags or environment variables. The format of the environment variables is SCANMASTER_<flag> (e.g. SCANMASTER_TIMEOUT=15)`,
		PreRunE: processConfig,
		RunE:    run,
	}
)

func init() {
	// initialize viper
	cobra.OnInitialize(cmdUtil.InitConfig)

	// add flags
	key := "interfaces"
	ServeCmd.PersistentFlags().String(key, "1=graph,2=device,3=overlay", cmdUtil.WrapString("Comma-separated list of interfaces to serve. Format: ID=TYPE where TYPE is one of: graph, device, overlay"))

	key = "device-entries"
	ServeCmd.PersistentFlags().String(key, "", cmdUtil.WrapString("Semicolon-separated list of key-values the device interfaces start with. Format: KEY=TYPE:DEFAULT[:MIN:MAX] where TYPE is one of: bool, char, byte, int, uint, float, double, string (e.g. 'ExposureTime=double:1.5:0.01:100;SerialNumber=string:SN-001'). String defaults are taken verbatim and may contain colons"))

	key = "timeout"
	ServeCmd.PersistentFlags().Int64(key, 5, cmdUtil.WrapString("Timeout in seconds"))

	key = "endpoint"
	ServeCmd.PersistentFlags().String(key, "0.0.0.0:8080", cmdUtil.WrapString("The address on which the API will listen (e.g. localhost:8080, /tmp/scanmaster.sock, ...)"))

	key = "metrics-endpoint"
	ServeCmd.PersistentFlags().String(key, "", cmdUtil.WrapString("The address on which /metrics and /debug/timers are served, disabled if empty (e.g. localhost:9100)"))

	key = "workers-per-conn"
	ServeCmd.PersistentFlags().Int(key, 16, cmdUtil.WrapString("How many requests of one connection are handled concurrently (ignored for http)"))

	key = "buffer-size"
	ServeCmd.PersistentFlags().Int(key, 64, cmdUtil.WrapString("The size of the pooled receive buffers (in KB, ignored for http)"))

	key = "max-message-size"
	ServeCmd.PersistentFlags().Int(key, common.DefaultMaxMessageSize>>10, cmdUtil.WrapString("The largest request the server accepts (in KB)"))

	key = "write-buffer"
	ServeCmd.PersistentFlags().Int(key, 512, cmdUtil.WrapString("The size of the socket write buffer (in KB, ignored for http)"))

	key = "read-buffer"
	ServeCmd.PersistentFlags().Int(key, 512, cmdUtil.WrapString("The size of the socket read buffer (in KB, ignored for http)"))

	key = "tcp-nodelay"
	ServeCmd.PersistentFlags().Bool(key, true, cmdUtil.WrapString("Whether to enable TCP_NODELAY (only for tcp)"))

	key = "tcp-keepalive"
	ServeCmd.PersistentFlags().Int(key, 0, cmdUtil.WrapString("The keepalive interval (in seconds, only for tcp)"))

	key = "tcp-linger"
	ServeCmd.PersistentFlags().Int(key, 0, cmdUtil.WrapString("The linger time (in seconds, only for tcp)"))

	key = "log-level"
	ServeCmd.PersistentFlags().String(key, "info", cmdUtil.WrapString("LogLevel is the level at which logs will be output (debug, info, warn, error)"))
}

// processConfig reads the configuration from the command line flags and environment variables and converts them to the server configuration
func processConfig(cmd *cobra.Command, _ []string) error {
	// bind the flags to viper
	if err := cmdUtil.BindCommandFlags(cmd); err != nil {
		return err
	}

	interfaces, err := common.ParseInterfaces(viper.GetString("interfaces"))
	if err != nil {
		return err
	}
	serveCmdConfig.Interfaces = interfaces

	serveCmdConfig.TimeoutSecond = viper.GetInt64("timeout")
	serveCmdConfig.MetricsEndpoint = viper.GetString("metrics-endpoint")
	serveCmdConfig.LogLevel = viper.GetString("log-level")
	serveCmdConfig.Transport = common.ServerTransportConfig{
		Endpoint:       viper.GetString("endpoint"),
		WorkersPerConn: viper.GetInt("workers-per-conn"),
		BufferSize:     viper.GetInt("buffer-size") * 1024,
		MaxMessageSize: viper.GetInt("max-message-size") * 1024,
		SocketConf: common.SocketConf{
			WriteBufferSize: viper.GetInt("write-buffer") * 1024,
			ReadBufferSize:  viper.GetInt("read-buffer") * 1024,
		},
		TCPConf: common.TCPConf{
			TCPNoDelay:      viper.GetBool("tcp-nodelay"),
			TCPKeepAliveSec: viper.GetInt("tcp-keepalive"),
			TCPLingerSec:    viper.GetInt("tcp-linger"),
		},
	}

	deviceEntries, err = parseDeviceEntries(viper.GetString("device-entries"))
	return err
}

// run starts the scanmaster server
func run(_ *cobra.Command, _ []string) error {
	if err := common.InitLoggers(serveCmdConfig.LogLevel); err != nil {
		return err
	}
	if err := bootstrap.Bootstrap(); err != nil {
		return err
	}

	t, err := cmdUtil.GetServerTransport()
	if err != nil {
		return err
	}

	serv := server.NewRPCServer(*serveCmdConfig, t)

	// device interfaces get their own store seeded with the configured entries
	for _, i := range serveCmdConfig.Interfaces {
		if i.Type != common.InterfaceDevice {
			continue
		}
		device, err := lstore.NewLocalDeviceStore(deviceEntries...)
		if err != nil {
			return err
		}
		serv.Bind(i.ID, server.NewDeviceServerAdapter(device))
	}

	return serv.Serve()
}

// parseDeviceEntries parses the value of the device-entries flag
func parseDeviceEntries(s string) ([]keyvalue.KeyValue, error) {
	var entries []keyvalue.KeyValue
	for _, entry := range strings.Split(s, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		key, def, ok := strings.Cut(entry, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid device entry format: %s (expected KEY=TYPE:DEFAULT[:MIN:MAX])", entry)
		}

		typeName, rest, ok := strings.Cut(def, ":")
		if !ok {
			return nil, fmt.Errorf("invalid device entry format: %s (expected KEY=TYPE:DEFAULT[:MIN:MAX])", entry)
		}

		t, err := value.ParseType(strings.TrimSpace(typeName))
		if err != nil {
			return nil, err
		}

		// string values are never range checked and may contain colons
		parts := []string{rest, "", ""}
		if t != value.TString {
			parts = strings.Split(rest, ":")
			if len(parts) != 1 && len(parts) != 3 {
				return nil, fmt.Errorf("invalid device entry format: %s (expected KEY=TYPE:DEFAULT[:MIN:MAX])", entry)
			}
			for len(parts) < 3 {
				parts = append(parts, "")
			}
		}

		kv, err := keyvalue.Parse(t, strings.TrimSpace(key), parts[0], parts[1], parts[2])
		if err != nil {
			return nil, fmt.Errorf("device entry %s: %w", key, err)
		}
		entries = append(entries, kv)
	}
	return entries, nil
}
