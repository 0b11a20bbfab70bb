package dto

// NewsvendorRequest overrides parts of the default problem. Absent
// pointer fields keep the default; supplying day_types or demand
// replaces the whole demand model.
type NewsvendorRequest struct {
	Days              *int                         `json:"days"`
	OrderQuantity     *int                         `json:"order_quantity"`
	SellingPrice      *float64                     `json:"selling_price"`
	CostPrice         *float64                     `json:"cost_price"`
	SalvagePrice      *float64                     `json:"salvage_price"`
	IncludeLostProfit *bool                        `json:"include_lost_profit"`
	Seed              *int64                       `json:"seed"`
	DayTypes          []DayTypeRequest             `json:"day_types,omitempty"`
	Demand            map[string][]DemandLevelItem `json:"demand,omitempty"`
}

type DayTypeRequest struct {
	Type string  `json:"type"`
	Prob float64 `json:"prob"`
}

type DemandLevelItem struct {
	Demand int     `json:"demand"`
	Prob   float64 `json:"prob"`
}

type DayRecordResponse struct {
	Day              int     `json:"day"`
	RNType           float64 `json:"rn_type"`
	Type             string  `json:"type"`
	RNDemand         float64 `json:"rn_demand"`
	Demand           int     `json:"demand"`
	Ordered          int     `json:"ordered"`
	Sold             int     `json:"sold"`
	Unsold           int     `json:"unsold"`
	Unmet            int     `json:"unmet"`
	Revenue          float64 `json:"revenue"`
	Cost             float64 `json:"cost"`
	Salvage          float64 `json:"salvage"`
	LostProfit       float64 `json:"lost_profit"`
	DailyProfit      float64 `json:"daily_profit"`
	CumulativeProfit float64 `json:"cumulative_profit"`
}

type NewsvendorSummaryResponse struct {
	AvgDailyProfit    float64 `json:"avg_daily_profit"`
	StdDevDailyProfit float64 `json:"std_dev_daily_profit"`
	TotalProfit       float64 `json:"total_profit"`
	AvgDemand         float64 `json:"avg_demand"`
	StockoutRate      float64 `json:"stockout_rate"`
	ScrapRate         float64 `json:"scrap_rate"`
}

type NewsvendorResponse struct {
	Days    int                       `json:"days"`
	Seed    *int64                    `json:"seed,omitempty"`
	Records []DayRecordResponse       `json:"records"`
	Summary NewsvendorSummaryResponse `json:"summary"`
}
