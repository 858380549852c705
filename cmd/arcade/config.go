package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/turn-arcade/internal/config"
)

var (
	flagConfigWrite bool
	flagConfigOut   string
)

var configCmd = &cobra.Command{
	Use:   "config <game>",
	Short: "Print or write a game preset",
	Long: `Print the preset a game would start with, after the usual lookup
(~/.arcade/configs, ./configs, built-in defaults).

With --write the preset is saved to ~/.arcade/configs/<game>.yaml (or
--out) so it can be edited.

Examples:
  arcade config gomoku
  arcade config snake --write
  arcade config tictactoe --out ./tictactoe.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigWrite, "write", false, "Save the preset to the user config directory")
	configCmd.Flags().StringVar(&flagConfigOut, "out", "", "Save the preset to this path")
}

func runConfig(_ *cobra.Command, args []string) error {
	gameID := args[0]

	preset, err := config.Load(gameID, "")
	if err != nil {
		return err
	}

	path := flagConfigOut
	if path == "" && flagConfigWrite {
		path = config.UserPresetPath(gameID)
		if path == "" {
			return errors.New("cannot locate home directory")
		}
	}

	if path == "" {
		return yaml.NewEncoder(os.Stdout).Encode(preset)
	}
	if err := config.Save(path, preset); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}
