package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	db "github.com/tendermint/tm-db"

	"github.com/tokenvault/tokenvault-go/core/state"
)

var InfoCommand = &cobra.Command{
	Use:   "info",
	Short: "Show ledger summary at a height",
	RunE:  info,
}

func init() {
	InfoCommand.Flags().Uint64("height", 0, "state version to inspect")
}

func info(cmd *cobra.Command, args []string) error {
	height, err := cmd.Flags().GetUint64("height")
	if err != nil {
		return errors.Wrap(err, "cannot parse height")
	}

	ldb, err := db.NewDB("state", db.BackendType(cfg.DBBackend), cfg.DBDir())
	if err != nil {
		return errors.Wrap(err, "cannot open state db")
	}

	currentState, err := state.NewCheckStateAtHeight(height, ldb)
	if err != nil {
		return errors.Wrapf(err, "cannot load state at height %d", height)
	}

	token := currentState.Token()
	fmt.Printf("token: %s (%s)\n", token.Name(), token.Symbol())
	fmt.Printf("volume: %s\n", token.Volume().String())
	fmt.Printf("max supply: %s\n", token.MaxSupply().String())
	fmt.Printf("mintable: %t, burnable: %t\n", token.IsMintable(), token.IsBurnable())
	fmt.Printf("owner: %s\n", currentState.App().Owner().String())
	fmt.Printf("paused: %t\n", currentState.App().IsPaused())

	return nil
}
