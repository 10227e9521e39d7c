package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tokenvault/tokenvault-go/cmd/utils"
	"github.com/tokenvault/tokenvault-go/config"
	"github.com/tokenvault/tokenvault-go/log"
)

var cfg *config.Config

var RootCmd = &cobra.Command{
	Use:   "tokenvault",
	Short: "Tokenvault ledger node",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		v := viper.New()
		v.SetConfigFile(utils.GetVaultConfigPath())
		cfg = config.GetConfig()

		if err := v.ReadInConfig(); err != nil {
			panic(err)
		}

		if err := v.Unmarshal(cfg); err != nil {
			panic(err)
		}

		if cfg.KeepLastStates < 1 {
			panic("keep_last_states field should be greater than 0")
		}

		log.InitLog(cfg)
	},
}
