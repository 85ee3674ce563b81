package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/llz-project/llz/internal/config"
)

var pluginsCmd = &cobra.Command{
	Use:   "plugins",
	Short: "List installed plugins and their launcher placement",
	RunE:  runPlugins,
}

func runPlugins(cmd *cobra.Command, args []string) error {
	registry := buildRegistry()
	visibility := config.LoadVisibility(config.VisibilityPath())

	fmt.Println("=== Installed Plugins ===")
	fmt.Println()
	for _, name := range registry.Names() {
		desc, _ := registry.Describe(name)
		placement := "home"
		if v, ok := visibility[name]; ok {
			placement = v.String()
		}
		fmt.Printf("%-14s %-10s %s\n", desc.Name, desc.Category, placement)
		if desc.Description != "" {
			fmt.Printf("  %s\n", desc.Description)
		}
	}
	fmt.Println()
	fmt.Printf("Visibility file: %s\n", config.VisibilityPath())
	return nil
}
