package device

import (
	"fmt"

	"github.com/IEcheandia/scanmaster-sub023/lib/keyvalue"
	"github.com/spf13/cobra"
)

var (
	getCmd = &cobra.Command{
		Use:   "get [key]",
		Short: "Gets the value of a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kv, err := loadEntry(args[0])
			if err != nil {
				return err
			}
			fmt.Println(kv.Text())
			return nil
		},
	}
	setCmd = &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Sets the value of a key, the value must lie within the range of the key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			// the stored entry provides type and range
			kv, err := loadEntry(args[0])
			if err != nil {
				return err
			}
			if err := kv.SetText(args[1]); err != nil {
				return err
			}
			if err := rpcStore.SetKeyValue(kv); err != nil {
				return err
			}
			fmt.Println("set successfully")
			return nil
		},
	}
	listCmd = &cobra.Command{
		Use:   "list",
		Short: "Lists all key-values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kvs, err := rpcStore.ListKeyValues()
			if err != nil {
				return err
			}
			for _, kv := range kvs {
				info := kv.Info()
				ro := ""
				if info.ReadOnly {
					ro = " (read-only)"
				}
				fmt.Printf("%s(%s)=%s%s\n", info.Key, info.Type, kv.Text(), ro)
			}
			return nil
		},
	}
)

func loadEntry(key string) (keyvalue.KeyValue, error) {
	kv, ok, err := rpcStore.GetKeyValue(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("key %s not found", key)
	}
	return kv, nil
}
