package commands

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"queue-sim-service/internal/api/dto"
)

var RunsCmd = &cobra.Command{
	Use:     "runs",
	Aliases: []string{"ls"},
	Short:   "List a running server's archived runs",
	Run: func(cmd *cobra.Command, args []string) {
		limit, _ := cmd.Flags().GetInt("limit")

		res, err := fetchRuns(viper.GetString("server"), limit)
		if err != nil {
			fail(err)
		}
		if len(res.Runs) == 0 {
			fmt.Println("No archived runs.")
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tCREATED\tCUSTOMERS\tMODE\tAVG_WAIT\tUTILIZATION\tHORIZON")
		for _, s := range res.Runs {
			fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%.2f\t%.2f%%\t%d\n",
				s.ID, s.CreatedAt.Format(time.RFC3339), s.Customers, s.Mode,
				s.Summary.AvgWait, s.Summary.Utilization*100, s.Summary.HorizonEnd)
		}
		w.Flush()
	},
}

func fetchRuns(server string, limit int) (dto.ListRunsResponse, error) {
	var res dto.ListRunsResponse

	url := fmt.Sprintf("%s/runs?limit=%d", strings.TrimRight(server, "/"), limit)
	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return res, fmt.Errorf("fetch runs: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return res, fmt.Errorf("fetch runs: server returned %d: %s", resp.StatusCode, apiErr.Error)
		}
		return res, fmt.Errorf("fetch runs: server returned %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return res, fmt.Errorf("fetch runs: decode response: %w", err)
	}
	return res, nil
}

func init() {
	RunsCmd.Flags().Int("limit", 20, "Maximum number of runs to list")
}
