package cmd

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	db "github.com/tendermint/tm-db"

	"github.com/tokenvault/tokenvault-go/core/state"
)

var ExportCommand = &cobra.Command{
	Use:   "export",
	Short: "Export the full ledger state at a height to JSON",
	RunE:  export,
}

func init() {
	ExportCommand.Flags().Uint64("height", 0, "state version to export")
	ExportCommand.Flags().Bool("indent", false, "indent the JSON output")
	ExportCommand.Flags().String("output", "ledger_state.json", "output file path")
}

func export(cmd *cobra.Command, args []string) error {
	height, err := cmd.Flags().GetUint64("height")
	if err != nil {
		return errors.Wrap(err, "cannot parse height")
	}

	indent, err := cmd.Flags().GetBool("indent")
	if err != nil {
		return errors.Wrap(err, "cannot parse indent")
	}

	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return errors.Wrap(err, "cannot parse output")
	}

	log.Println("Start exporting...")

	ldb, err := db.NewDB("state", db.BackendType(cfg.DBBackend), cfg.DBDir())
	if err != nil {
		return errors.Wrap(err, "cannot open state db")
	}

	currentState, err := state.NewCheckStateAtHeight(height, ldb)
	if err != nil {
		return errors.Wrapf(err, "cannot load state at height %d", height)
	}

	exportTimeStart := time.Now()
	appState := currentState.Export()
	log.Printf("State has been exported. Took %s", time.Since(exportTimeStart))

	if err := appState.Verify(); err != nil {
		return errors.Wrap(err, "exported state failed verification")
	}

	var jsonBytes []byte
	if indent {
		jsonBytes, err = json.MarshalIndent(appState, "", "	")
	} else {
		jsonBytes, err = json.Marshal(appState)
	}
	if err != nil {
		return errors.Wrap(err, "cannot marshal state")
	}

	if err := os.WriteFile(output, jsonBytes, 0644); err != nil {
		return errors.Wrap(err, "cannot write output file")
	}

	fmt.Printf("Ledger state at height %d saved to %s\n", height, output)
	fmt.Printf("SHA256: %x\n", sha256.Sum256(jsonBytes))

	return nil
}
