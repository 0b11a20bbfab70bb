package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"queue-sim-service/internal/config"
)

var SampleConfigCmd = &cobra.Command{
	Use:   "sample-config [tables|newsvendor]",
	Short: "Print or write a ready-to-edit YAML config",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		out, _ := cmd.Flags().GetString("out")

		kind := "tables"
		if len(args) == 1 {
			kind = args[0]
		}

		var sample string
		switch kind {
		case "tables":
			sample = config.SampleTablesYAML
		case "newsvendor":
			sample = config.SampleNewsvendorYAML
		default:
			fmt.Printf("Error: unknown config kind %q (want tables or newsvendor)\n", kind)
			os.Exit(1)
		}

		if out == "" {
			fmt.Print(sample)
			return
		}
		if err := os.WriteFile(out, []byte(sample), 0o644); err != nil {
			fail(fmt.Errorf("write %s: %w", out, err))
		}
		fmt.Printf("Sample %s config written to %s\n", kind, out)
	},
}

func init() {
	SampleConfigCmd.Flags().String("out", "", "Write the sample to this path instead of stdout")
}
