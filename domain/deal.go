package domain

// Property is the subset of a property record read by the deal engine.
type Property struct {
	PurchasePrice float64 `json:"purchase_price"`
	RepairCost    float64 `json:"repair_cost"`
	ARV           float64 `json:"arv"`
}

// RentalAssumptions overrides the default rental model field by field.
// A nil field keeps its default; a non-nil field replaces it, zero included.
// Rates are whole percentages (8 means 8%).
type RentalAssumptions struct {
	MonthlyRent       *float64 `json:"monthly_rent,omitempty"`
	VacancyRate       *float64 `json:"vacancy_rate,omitempty"`
	ManagementFee     *float64 `json:"management_fee,omitempty"`
	MaintenanceRate   *float64 `json:"maintenance_rate,omitempty"`
	InsuranceAnnual   *float64 `json:"insurance_annual,omitempty"`
	PropertyTaxAnnual *float64 `json:"property_tax_annual,omitempty"`
	HOAMonthly        *float64 `json:"hoa_monthly,omitempty"`
	LoanAmount        *float64 `json:"loan_amount,omitempty"`
	InterestRate      *float64 `json:"interest_rate,omitempty"`
	LoanTermYears     *float64 `json:"loan_term_years,omitempty"`
}

// BuyingCriteria are the investor's flip settings. Percentages are whole
// numbers (3 means 3%).
type BuyingCriteria struct {
	ClosingExpensesPct   *float64 `json:"closing_expenses_pct,omitempty"`
	HoldingMonths        *float64 `json:"holding_months,omitempty"`
	MonthlyHoldingCost   *float64 `json:"monthly_holding_cost,omitempty"`
	SellingCommissionPct *float64 `json:"selling_commission_pct,omitempty"`
	YourProfitPct        *float64 `json:"your_profit_pct,omitempty"`
}

// DealAnalysisInput bundles everything the engine reads.
type DealAnalysisInput struct {
	Property          Property           `json:"property"`
	RentalAssumptions *RentalAssumptions `json:"rental_assumptions,omitempty"`
	BuyingCriteria    *BuyingCriteria    `json:"buying_criteria,omitempty"`
}

type DealMetrics struct {
	// Purchase
	PurchasePrice   float64 `json:"purchasePrice"`
	RepairCost      float64 `json:"repairCost"`
	ClosingCosts    float64 `json:"closingCosts"`
	HoldingCosts    float64 `json:"holdingCosts"`
	TotalInvestment float64 `json:"totalInvestment"`

	// Flip
	ARV         float64 `json:"arv"`
	GrossProfit float64 `json:"grossProfit"`
	NetProfit   float64 `json:"netProfit"`
	ROI         float64 `json:"roi"`
	MAO         float64 `json:"mao"`

	// Rental
	MonthlyRent         float64 `json:"monthlyRent"`
	MonthlyExpenses     float64 `json:"monthlyExpenses"`
	MonthlyMortgage     float64 `json:"monthlyMortgage"`
	MonthlyCashFlow     float64 `json:"monthlyCashFlow"`
	AnnualCashFlow      float64 `json:"annualCashFlow"`
	CashOnCashReturn    float64 `json:"cashOnCashReturn"`
	CapRate             float64 `json:"capRate"`
	GrossRentMultiplier float64 `json:"grossRentMultiplier"`

	HasFlipData   bool `json:"hasFlipData"`
	HasRentalData bool `json:"hasRentalData"`
}

// Float returns a pointer to v, for filling override bags.
func Float(v float64) *float64 {
	return &v
}
