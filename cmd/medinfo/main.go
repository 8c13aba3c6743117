// Command medinfo runs the medicine normalizer and oracle lookups from the
// terminal.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	_ "github.com/EmpoweredVote/DoseRight/internal/oracle/gemini"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load(".env.local")
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "medinfo",
		Short:         "Inspect medicine summaries",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newNormalizeCmd(), newLookupCmd())
	return root
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
