package main

import (
	"fmt"
	"strings"

	"github.com/EmpoweredVote/DoseRight/internal/config"
	"github.com/EmpoweredVote/DoseRight/internal/logging"
	"github.com/EmpoweredVote/DoseRight/internal/medicine"
	"github.com/EmpoweredVote/DoseRight/internal/oracle"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newLookupCmd() *cobra.Command {
	var simple bool
	cmd := &cobra.Command{
		Use:   "lookup <medicine name>",
		Short: "Ask the configured oracle about a medicine",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadFromEnv()
			if err := cfg.Validate(); err != nil {
				return err
			}
			lg, err := logging.New(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer lg.Sync()

			o, err := oracle.New(cmd.Context(), cfg, lg)
			if err != nil {
				return err
			}

			mode := medicine.ParseMode(cfg.Normalizer)
			if simple {
				mode = medicine.ModeSimple
			}
			name := strings.Join(args, " ")
			summary, outcome, err := medicine.Lookup(cmd.Context(), o, name, mode)
			if err != nil {
				lg.Warn("lookup fell back to defaults", zap.Stringer("outcome", outcome), zap.Error(err))
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "oracle=%s outcome=%s\n", o.Name(), outcome)

			info := medicine.NewInfo(name, summary, "", medicine.AIRecognition, medicine.NewStaticTranslator())
			return writeJSON(cmd.OutOrStdout(), info)
		},
	}
	cmd.Flags().BoolVar(&simple, "simple", false, "use the short two-line format")
	return cmd
}
