package main

import (
	"github.com/tokenvault/tokenvault-go/cmd/tokenvault/cmd"
	"github.com/tokenvault/tokenvault-go/cmd/utils"
)

func main() {
	rootCmd := cmd.RootCmd
	rootCmd.PersistentFlags().StringVar(&utils.VaultHome, "home-dir", "", "base dir (default is $HOME/.tokenvault)")
	rootCmd.PersistentFlags().StringVar(&utils.VaultConfig, "config", "", "path to config file")

	rootCmd.AddCommand(
		cmd.ExportCommand,
		cmd.InfoCommand,
		cmd.VerifyGenesis,
		cmd.Version)

	if err := rootCmd.Execute(); err != nil {
		panic(err)
	}
}
