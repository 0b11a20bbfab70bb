// Package export renders finished simulation results as CSV
// downloads. Column names and value formats are part of the API
// contract; change them only deliberately.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"queue-sim-service/internal/domain"
)

// WriteRecordsCSV writes the per-customer simulation table. TSB and
// TSE are the service begin and end clocks.
func WriteRecordsCSV(w io.Writer, records []domain.CustomerRecord) error {
	cw := csv.NewWriter(w)

	header := []string{"Cust", "RN_IAT", "IAT", "Arrival", "RN_ST", "ST", "TSB", "Wait", "TSE", "TimeInSystem", "ServerIdle"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write records csv: %w", err)
	}

	for _, rec := range records {
		row := []string{
			strconv.Itoa(rec.Index),
			strconv.Itoa(rec.RNIAT),
			strconv.Itoa(rec.IAT),
			strconv.Itoa(rec.ArrivalTime),
			strconv.Itoa(rec.RNST),
			strconv.Itoa(rec.ST),
			strconv.Itoa(rec.ServiceStart),
			strconv.Itoa(rec.WaitTime),
			strconv.Itoa(rec.ServiceEnd),
			strconv.Itoa(rec.TimeInSystem),
			strconv.Itoa(rec.IdleBefore),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write records csv: row %d: %w", rec.Index, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteSummaryCSV writes the queue KPI table as metric/value rows.
// Utilization is reported as a percentage.
func WriteSummaryCSV(w io.Writer, s domain.SummaryKPIs) error {
	cw := csv.NewWriter(w)

	rows := [][]string{
		{"Metric", "Value"},
		{"Average waiting time", fmt.Sprintf("%.2f", s.AvgWait)},
		{"Maximum waiting time", strconv.Itoa(s.MaxWait)},
		{"Total server idle time", strconv.Itoa(s.TotalIdle)},
		{"Server utilization (%)", fmt.Sprintf("%.2f%%", s.Utilization*100)},
		{"Simulation horizon end (last TSE)", strconv.Itoa(s.HorizonEnd)},
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write summary csv: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteDaysCSV writes the per-day newsvendor table. The uniform draws
// keep six decimals so a run can be checked by hand; money columns
// use two.
func WriteDaysCSV(w io.Writer, days []domain.DayRecord) error {
	cw := csv.NewWriter(w)

	header := []string{
		"Day", "Random for Type", "Type of Day", "Random for Demand",
		"Demand", "Ordered", "Sold", "Unsold", "Unmet",
		"Revenue", "Cost", "Salvage", "Lost Profit", "Daily Profit", "Cumulative Profit",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write days csv: %w", err)
	}

	for _, d := range days {
		row := []string{
			strconv.Itoa(d.Day),
			fmt.Sprintf("%.6f", d.RNType),
			string(d.Type),
			fmt.Sprintf("%.6f", d.RNDemand),
			strconv.Itoa(d.Demand),
			strconv.Itoa(d.Ordered),
			strconv.Itoa(d.Sold),
			strconv.Itoa(d.Unsold),
			strconv.Itoa(d.Unmet),
			fmt.Sprintf("%.2f", d.Revenue),
			fmt.Sprintf("%.2f", d.Cost),
			fmt.Sprintf("%.2f", d.Salvage),
			fmt.Sprintf("%.2f", d.LostProfit),
			fmt.Sprintf("%.2f", d.DailyProfit),
			fmt.Sprintf("%.2f", d.CumulativeProfit),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write days csv: day %d: %w", d.Day, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteNewsvendorSummaryCSV writes the newsvendor aggregate table.
// Rates are reported as percentages with one decimal.
func WriteNewsvendorSummaryCSV(w io.Writer, s domain.NewsvendorSummary) error {
	cw := csv.NewWriter(w)

	rows := [][]string{
		{"Metric", "Value"},
		{"Average daily profit", fmt.Sprintf("%.2f", s.AvgDailyProfit)},
		{"Std dev of daily profit", fmt.Sprintf("%.2f", s.StdDevDailyProfit)},
		{"Total profit", fmt.Sprintf("%.2f", s.TotalProfit)},
		{"Average demand", fmt.Sprintf("%.2f", s.AvgDemand)},
		{"Stockout rate", fmt.Sprintf("%.1f%%", s.StockoutRate*100)},
		{"Scrap (unsold) rate", fmt.Sprintf("%.1f%%", s.ScrapRate*100)},
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write newsvendor summary csv: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
