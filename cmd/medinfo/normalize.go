package main

import (
	"io"

	"github.com/EmpoweredVote/DoseRight/internal/medicine"
	"github.com/spf13/cobra"
)

func newNormalizeCmd() *cobra.Command {
	var (
		name   string
		simple bool
	)
	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Normalize an oracle reply read from stdin",
		Long:  "Reads a free-text reply on stdin and prints the normalized record as JSON.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return err
			}
			mode := medicine.ModeFull
			if simple {
				mode = medicine.ModeSimple
			}
			summary := mode.Normalizer()(name, string(raw))
			info := medicine.NewInfo(name, summary, "", medicine.AIRecognition, medicine.NewStaticTranslator())
			return writeJSON(cmd.OutOrStdout(), info)
		},
	}
	cmd.Flags().StringVar(&name, "name", medicine.DefaultName, "medicine name used in default sentences")
	cmd.Flags().BoolVar(&simple, "simple", false, "use the short two-line format")
	return cmd
}
