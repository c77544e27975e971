// Package main is the entry point for the horror-bot game server and its
// command line client
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/horror-bot/cmd/server/client"
)

var rootCmd = &cobra.Command{
	Use:   "horror-bot",
	Short: "Horror RPG game server",
	Long:  `horror-bot runs turn-based horror games for chat front-ends: lobbies, turns, free-form actions and ratings.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
