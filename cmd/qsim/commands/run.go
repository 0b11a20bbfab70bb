package commands

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"queue-sim-service/internal/api/dto"
	"queue-sim-service/internal/config"
	"queue-sim-service/internal/domain"
	"queue-sim-service/internal/export"
	"queue-sim-service/internal/services"
)

var RunCmd = &cobra.Command{
	Use:     "run",
	Aliases: []string{"r"},
	Short:   "Run a single-server queue simulation",
	Long: `Simulates a single-server queue. By default inter-arrival and
service times are drawn from the built-in distribution tables; pass
--iat and --st to replay explicit random-number streams.`,
	Run: func(cmd *cobra.Command, args []string) {
		customers, _ := cmd.Flags().GetInt("customers")
		iatText, _ := cmd.Flags().GetString("iat")
		stText, _ := cmd.Flags().GetString("st")
		tablesPath, _ := cmd.Flags().GetString("tables")
		out, _ := cmd.Flags().GetString("out")
		summaryOut, _ := cmd.Flags().GetString("summary-out")
		asJSON, _ := cmd.Flags().GetBool("json")

		in := services.QueueInput{Customers: customers}
		if cmd.Flags().Changed("seed") {
			seed, _ := cmd.Flags().GetInt64("seed")
			in.Seed = &seed
		}
		if iatText != "" || stText != "" {
			iat, err := services.ParseRNList("iat", iatText)
			if err != nil {
				fail(err)
			}
			st, err := services.ParseRNList("st", stText)
			if err != nil {
				fail(err)
			}
			in.UseCustomRN = true
			in.CustomIAT = iat
			in.CustomST = st
		}

		tables := domain.DefaultTables()
		if tablesPath != "" {
			loaded, err := config.LoadTables(tablesPath)
			if err != nil {
				fail(err)
			}
			tables = loaded
		}

		records, summary, err := services.SimulateQueue(in, tables)
		if err != nil {
			fail(err)
		}

		if asJSON {
			printJSON(queueRunOutput(in, records, summary))
		} else {
			if in.Seed != nil && !in.UseCustomRN {
				fmt.Printf("Simulated %d customers (%s, seed %d)\n\n", len(records), in.Mode(), *in.Seed)
			} else {
				fmt.Printf("Simulated %d customers (%s)\n\n", len(records), in.Mode())
			}
			printRecords(records)
			printQueueSummary(summary)
		}

		if out != "" {
			if err := writeCSVFile(out, func(w io.Writer) error {
				return export.WriteRecordsCSV(w, records)
			}); err != nil {
				fail(err)
			}
			fmt.Printf("Records written to %s\n", out)
		}
		if summaryOut != "" {
			if err := writeCSVFile(summaryOut, func(w io.Writer) error {
				return export.WriteSummaryCSV(w, summary)
			}); err != nil {
				fail(err)
			}
			fmt.Printf("Summary written to %s\n", summaryOut)
		}
	},
}

// queueRunOutput shapes the run the way the HTTP API responds, so
// scripted callers see one contract.
func queueRunOutput(in services.QueueInput, records []domain.CustomerRecord, summary domain.SummaryKPIs) dto.SimulationResponse {
	res := dto.SimulationResponse{
		CustomerCount: len(records),
		Mode:          in.Mode(),
		Records:       make([]dto.CustomerRecordResponse, 0, len(records)),
		Summary: dto.SummaryResponse{
			AvgWait:     summary.AvgWait,
			MaxWait:     summary.MaxWait,
			TotalIdle:   summary.TotalIdle,
			Utilization: summary.Utilization,
			HorizonEnd:  summary.HorizonEnd,
		},
	}
	if !in.UseCustomRN {
		res.Seed = in.Seed
	}
	for _, rec := range records {
		res.Records = append(res.Records, dto.CustomerRecordResponse{
			Index:        rec.Index,
			RNIAT:        rec.RNIAT,
			IAT:          rec.IAT,
			ArrivalTime:  rec.ArrivalTime,
			RNST:         rec.RNST,
			ST:           rec.ST,
			ServiceStart: rec.ServiceStart,
			ServiceEnd:   rec.ServiceEnd,
			WaitTime:     rec.WaitTime,
			TimeInSystem: rec.TimeInSystem,
			IdleBefore:   rec.IdleBefore,
		})
	}
	return res
}

func printRecords(records []domain.CustomerRecord) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "CUST\tRN_IAT\tIAT\tARRIVAL\tRN_ST\tST\tSTART\tWAIT\tEND\tIN_SYSTEM\tIDLE")
	for _, rec := range records {
		fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\n",
			rec.Index, rec.RNIAT, rec.IAT, rec.ArrivalTime, rec.RNST, rec.ST,
			rec.ServiceStart, rec.WaitTime, rec.ServiceEnd, rec.TimeInSystem, rec.IdleBefore)
	}
	w.Flush()
}

func printQueueSummary(s domain.SummaryKPIs) {
	fmt.Println()
	fmt.Printf("Average waiting time:    %.2f\n", s.AvgWait)
	fmt.Printf("Maximum waiting time:    %d\n", s.MaxWait)
	fmt.Printf("Total server idle time:  %d\n", s.TotalIdle)
	fmt.Printf("Server utilization:      %.2f%%\n", s.Utilization*100)
	fmt.Printf("Horizon end (last TSE):  %d\n", s.HorizonEnd)
}

func init() {
	RunCmd.Flags().IntP("customers", "n", 10, "Number of customers to simulate")
	RunCmd.Flags().Int64("seed", 0, "Seed for the random-number generator")
	RunCmd.Flags().String("iat", "", "Explicit inter-arrival random numbers (comma or newline separated)")
	RunCmd.Flags().String("st", "", "Explicit service-time random numbers (comma or newline separated)")
	RunCmd.Flags().String("tables", "", "Distribution tables YAML file (default: built-in tables)")
	RunCmd.Flags().String("out", "", "Write per-customer records CSV to this path")
	RunCmd.Flags().String("summary-out", "", "Write summary CSV to this path")
	RunCmd.Flags().Bool("json", false, "Print the run as JSON instead of tables")
}
