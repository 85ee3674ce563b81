package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/llz-project/llz/internal/config"
)

var configSet []string

var configCmd = &cobra.Command{
	Use:   "config <plugin>",
	Short: "Show or update a plugin's config file",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfig,
}

func init() {
	configCmd.Flags().StringArrayVar(&configSet, "set", nil, "set key=value (repeatable)")
}

func runConfig(cmd *cobra.Command, args []string) error {
	name := args[0]
	store := config.NewStore(config.Root())
	cfg := store.Open(name)

	for _, kv := range configSet {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("invalid --set %q, want key=value", kv)
		}
		cfg.SetString(key, value)
	}
	if cfg.Dirty() {
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config for %s: %w", name, err)
		}
		fmt.Printf("Updated %s\n", store.Path(name))
		return nil
	}

	path := store.Path(name)
	fmt.Printf("Config file: %s\n", path)
	if _, err := os.Stat(path); err != nil {
		fmt.Println("  Status: NOT FOUND (plugin defaults apply)")
		return nil
	}
	keys := cfg.Keys()
	if len(keys) == 0 {
		fmt.Println("  (empty)")
		return nil
	}
	for _, key := range keys {
		fmt.Printf("  %s = %s\n", key, cfg.GetString(key, ""))
	}
	return nil
}
