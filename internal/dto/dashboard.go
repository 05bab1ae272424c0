package dto

// OwnerDashboard summarises the portfolio for an owner
type OwnerDashboard struct {
	TotalFlats      int     `json:"total_flats"`
	OccupiedFlats   int     `json:"occupied_flats"`
	MonthlyRevenue  float64 `json:"monthly_revenue"`
	UnpaidBillCount int     `json:"unpaid_bill_count"`
	OpenTicketCount int     `json:"open_ticket_count"`
}

// TenantDashboard summarises dues for a tenant
type TenantDashboard struct {
	FlatName        string  `json:"flat_name,omitempty"`
	MonthlyRent     float64 `json:"monthly_rent"`
	AmountDue       float64 `json:"amount_due"`
	UnpaidBillCount int     `json:"unpaid_bill_count"`
	OpenTicketCount int     `json:"open_ticket_count"`
}
