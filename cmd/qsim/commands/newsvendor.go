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

var NewsvendorCmd = &cobra.Command{
	Use:     "newsvendor",
	Aliases: []string{"nv"},
	Short:   "Run the newsvendor profit simulation",
	Long: `Simulates daily newspaper sales under uncertain demand. The built-in
problem (1000 days, order quantity 70) can be replaced with --problem
or adjusted per flag.`,
	Run: func(cmd *cobra.Command, args []string) {
		problemPath, _ := cmd.Flags().GetString("problem")
		out, _ := cmd.Flags().GetString("out")
		summaryOut, _ := cmd.Flags().GetString("summary-out")
		show, _ := cmd.Flags().GetInt("show")
		asJSON, _ := cmd.Flags().GetBool("json")

		problem := domain.DefaultNewsvendorProblem()
		if problemPath != "" {
			loaded, err := config.LoadNewsvendorProblem(problemPath)
			if err != nil {
				fail(err)
			}
			problem = loaded
		}
		if cmd.Flags().Changed("days") {
			problem.Days, _ = cmd.Flags().GetInt("days")
		}
		if cmd.Flags().Changed("order") {
			problem.OrderQuantity, _ = cmd.Flags().GetInt("order")
		}
		if cmd.Flags().Changed("price") {
			problem.SellingPrice, _ = cmd.Flags().GetFloat64("price")
		}
		if cmd.Flags().Changed("cost") {
			problem.CostPrice, _ = cmd.Flags().GetFloat64("cost")
		}
		if cmd.Flags().Changed("salvage") {
			problem.SalvagePrice, _ = cmd.Flags().GetFloat64("salvage")
		}
		if cmd.Flags().Changed("lost-profit") {
			problem.IncludeLostProfit, _ = cmd.Flags().GetBool("lost-profit")
		}

		var seed *int64
		if cmd.Flags().Changed("seed") {
			s, _ := cmd.Flags().GetInt64("seed")
			seed = &s
		}

		records, summary, err := services.SimulateNewsvendor(problem, seed)
		if err != nil {
			fail(err)
		}

		if asJSON {
			printJSON(newsvendorOutput(problem, seed, records, summary))
		} else {
			fmt.Printf("Simulated %d days (order quantity %d)\n\n", problem.Days, problem.OrderQuantity)
			if show > 0 {
				if show > len(records) {
					show = len(records)
				}
				printDays(records[:show])
				fmt.Println()
			}
			printNewsvendorSummary(summary)
		}

		if out != "" {
			if err := writeCSVFile(out, func(w io.Writer) error {
				return export.WriteDaysCSV(w, records)
			}); err != nil {
				fail(err)
			}
			fmt.Printf("Day records written to %s\n", out)
		}
		if summaryOut != "" {
			if err := writeCSVFile(summaryOut, func(w io.Writer) error {
				return export.WriteNewsvendorSummaryCSV(w, summary)
			}); err != nil {
				fail(err)
			}
			fmt.Printf("Summary written to %s\n", summaryOut)
		}
	},
}

func newsvendorOutput(p domain.NewsvendorProblem, seed *int64, records []domain.DayRecord, summary domain.NewsvendorSummary) dto.NewsvendorResponse {
	res := dto.NewsvendorResponse{
		Days:    p.Days,
		Seed:    seed,
		Records: make([]dto.DayRecordResponse, 0, len(records)),
		Summary: dto.NewsvendorSummaryResponse{
			AvgDailyProfit:    summary.AvgDailyProfit,
			StdDevDailyProfit: summary.StdDevDailyProfit,
			TotalProfit:       summary.TotalProfit,
			AvgDemand:         summary.AvgDemand,
			StockoutRate:      summary.StockoutRate,
			ScrapRate:         summary.ScrapRate,
		},
	}
	for _, rec := range records {
		res.Records = append(res.Records, dto.DayRecordResponse{
			Day:              rec.Day,
			RNType:           rec.RNType,
			Type:             string(rec.Type),
			RNDemand:         rec.RNDemand,
			Demand:           rec.Demand,
			Ordered:          rec.Ordered,
			Sold:             rec.Sold,
			Unsold:           rec.Unsold,
			Unmet:            rec.Unmet,
			Revenue:          rec.Revenue,
			Cost:             rec.Cost,
			Salvage:          rec.Salvage,
			LostProfit:       rec.LostProfit,
			DailyProfit:      rec.DailyProfit,
			CumulativeProfit: rec.CumulativeProfit,
		})
	}
	return res
}

func printDays(records []domain.DayRecord) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "DAY\tTYPE\tDEMAND\tSOLD\tUNSOLD\tUNMET\tPROFIT\tCUMULATIVE")
	for _, rec := range records {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%d\t%.2f\t%.2f\n",
			rec.Day, rec.Type, rec.Demand, rec.Sold, rec.Unsold, rec.Unmet,
			rec.DailyProfit, rec.CumulativeProfit)
	}
	w.Flush()
}

func printNewsvendorSummary(s domain.NewsvendorSummary) {
	fmt.Printf("Average daily profit:   %.2f\n", s.AvgDailyProfit)
	fmt.Printf("Std dev daily profit:   %.2f\n", s.StdDevDailyProfit)
	fmt.Printf("Total profit:           %.2f\n", s.TotalProfit)
	fmt.Printf("Average demand:         %.2f\n", s.AvgDemand)
	fmt.Printf("Stockout rate:          %.1f%%\n", s.StockoutRate*100)
	fmt.Printf("Scrap (unsold) rate:    %.1f%%\n", s.ScrapRate*100)
}

func init() {
	NewsvendorCmd.Flags().Int("days", 0, "Number of days to simulate (default: problem definition)")
	NewsvendorCmd.Flags().Int("order", 0, "Papers ordered each day (default: problem definition)")
	NewsvendorCmd.Flags().Float64("price", 0, "Selling price per paper (default: problem definition)")
	NewsvendorCmd.Flags().Float64("cost", 0, "Cost price per paper (default: problem definition)")
	NewsvendorCmd.Flags().Float64("salvage", 0, "Salvage value per unsold paper (default: problem definition)")
	NewsvendorCmd.Flags().Bool("lost-profit", false, "Subtract lost profit on unmet demand")
	NewsvendorCmd.Flags().Int64("seed", 0, "Seed for the random-number generator")
	NewsvendorCmd.Flags().String("problem", "", "Problem definition YAML file (default: built-in problem)")
	NewsvendorCmd.Flags().Int("show", 0, "Print the first N simulated days")
	NewsvendorCmd.Flags().String("out", "", "Write per-day records CSV to this path")
	NewsvendorCmd.Flags().String("summary-out", "", "Write summary CSV to this path")
	NewsvendorCmd.Flags().Bool("json", false, "Print the run as JSON instead of tables")
}
