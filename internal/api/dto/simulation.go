package dto

type SimulationRequest struct {
	CustomerCount int    `json:"customer_count"`
	Seed          *int64 `json:"seed"`
	UseCustomRN   bool   `json:"use_custom_rn"`
	// Comma- or newline-delimited integer lists, one value per
	// customer. Only read when use_custom_rn is true.
	CustomIATRNs string `json:"custom_iat_rns"`
	CustomSTRNs  string `json:"custom_st_rns"`
}

type CustomerRecordResponse struct {
	Index        int `json:"index"`
	RNIAT        int `json:"rn_iat"`
	IAT          int `json:"iat"`
	ArrivalTime  int `json:"arrival_time"`
	RNST         int `json:"rn_st"`
	ST           int `json:"st"`
	ServiceStart int `json:"service_start"`
	ServiceEnd   int `json:"service_end"`
	WaitTime     int `json:"wait_time"`
	TimeInSystem int `json:"time_in_system"`
	IdleBefore   int `json:"idle_before"`
}

type SummaryResponse struct {
	AvgWait     float64 `json:"avg_wait"`
	MaxWait     int     `json:"max_wait"`
	TotalIdle   int     `json:"total_idle"`
	Utilization float64 `json:"utilization"`
	HorizonEnd  int     `json:"horizon_end"`
}

type SimulationResponse struct {
	RunID         int64                    `json:"run_id,omitempty"`
	CustomerCount int                      `json:"customer_count"`
	Mode          string                   `json:"mode"`
	Seed          *int64                   `json:"seed,omitempty"`
	Records       []CustomerRecordResponse `json:"records"`
	Summary       SummaryResponse          `json:"summary"`
}
