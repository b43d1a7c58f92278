// Package main is the entry point for the catalog CLI
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	dataDir   string
	redisAddr string
)

var rootCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Megabonk catalog browser",
	Long:  `Browse, search, filter, favorite, and compare catalog entities (items, weapons, tomes, characters, shrines).`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "data", "directory holding per-type catalog documents")
	rootCmd.PersistentFlags().StringVar(&redisAddr, "redis", "localhost:6379", "redis endpoint for favorites persistence")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(favoritesCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(verifyCmd)
}
