package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/storefront/core/cmd/api/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "storefront",
		Short: "Storefront Admin API Server",
		Long:  `Storefront is an e-commerce admin API backed by a file-based document store, serving catalog, user and order management plus local authentication.`,
	}

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewSeedCommand())
	rootCmd.AddCommand(commands.NewUserCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
