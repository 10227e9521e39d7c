package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/tokenvault/tokenvault-go/core/types"
)

var VerifyGenesis = &cobra.Command{
	Use:   "verify_genesis",
	Short: "Verify the genesis ledger state file",
	RunE:  verifyGenesis,
}

func verifyGenesis(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(cfg.GenesisFile())
	if err != nil {
		return errors.Wrap(err, "cannot read genesis file")
	}

	var genesisState types.AppState
	if err := json.Unmarshal(data, &genesisState); err != nil {
		return errors.Wrap(err, "cannot parse genesis file")
	}

	if err := genesisState.Verify(); err != nil {
		return err
	}

	fmt.Printf("Genesis is ok\n")

	return nil
}
