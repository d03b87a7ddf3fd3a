package service

import (
	"math"

	"deal-analyzer/domain"
)

// rentalModel is RentalAssumptions with every default filled in.
type rentalModel struct {
	MonthlyRent       float64
	VacancyRate       float64
	ManagementFee     float64
	MaintenanceRate   float64
	InsuranceAnnual   float64
	PropertyTaxAnnual float64
	HOAMonthly        float64
	LoanAmount        float64
	InterestRate      float64
	LoanTermYears     float64
}

func resolveRentalModel(a *domain.RentalAssumptions) rentalModel {
	m := rentalModel{
		VacancyRate:       DefaultVacancyRate,
		ManagementFee:     DefaultManagementFee,
		MaintenanceRate:   DefaultMaintenanceRate,
		InsuranceAnnual:   DefaultInsuranceAnnual,
		PropertyTaxAnnual: DefaultPropertyTaxAnnual,
		InterestRate:      DefaultInterestRate,
		LoanTermYears:     DefaultLoanTermYears,
	}
	if a == nil {
		return m
	}
	override(&m.MonthlyRent, a.MonthlyRent)
	override(&m.VacancyRate, a.VacancyRate)
	override(&m.ManagementFee, a.ManagementFee)
	override(&m.MaintenanceRate, a.MaintenanceRate)
	override(&m.InsuranceAnnual, a.InsuranceAnnual)
	override(&m.PropertyTaxAnnual, a.PropertyTaxAnnual)
	override(&m.HOAMonthly, a.HOAMonthly)
	override(&m.LoanAmount, a.LoanAmount)
	override(&m.InterestRate, a.InterestRate)
	override(&m.LoanTermYears, a.LoanTermYears)
	return m
}

func override(dst *float64, v *float64) {
	if v != nil {
		*dst = finite(*v)
	}
}

// flipModel holds the buying-criteria rates after fallback resolution.
type flipModel struct {
	ClosingCostsPct float64
	HoldingCosts    float64 // dollars, not a rate
	SellingCostsPct float64
	MAORulePct      float64
}

func resolveFlipModel(c *domain.BuyingCriteria, purchasePrice float64) flipModel {
	if c == nil {
		c = &domain.BuyingCriteria{}
	}

	m := flipModel{
		ClosingCostsPct: DefaultClosingCostsPct,
		HoldingCosts:    purchasePrice * DefaultHoldingCostPct,
		SellingCostsPct: DefaultSellingCostsPct,
		MAORulePct:      DefaultMAORulePct,
	}
	if c.ClosingExpensesPct != nil {
		m.ClosingCostsPct = finite(*c.ClosingExpensesPct) / 100
	}
	if months, cost := present(c.HoldingMonths), present(c.MonthlyHoldingCost); months != 0 && cost != 0 {
		m.HoldingCosts = months * cost
	}
	if c.SellingCommissionPct != nil {
		m.SellingCostsPct = finite(*c.SellingCommissionPct) / 100
	}
	// The profit target is net of the resolved selling costs, override or not.
	if c.YourProfitPct != nil {
		m.MAORulePct = 1 - finite(*c.YourProfitPct)/100 - m.SellingCostsPct
	}
	return m
}

// Analyze derives flip and rental metrics for a property. It is total: any
// missing or degenerate input yields zeros rather than an error, NaN or Inf.
// Derived values that overflow float64 are reported as 0.
//
// The default insurance ($1200/yr) and property tax ($3000/yr) are charged
// whatever the property, so even a zero property reports monthly expenses of
// 350 and a matching negative cash flow. Override both with 0 to suppress them.
func Analyze(
	property domain.Property,
	assumptions *domain.RentalAssumptions,
	criteria *domain.BuyingCriteria,
) domain.DealMetrics {

	rental := resolveRentalModel(assumptions)

	purchasePrice := finite(property.PurchasePrice)
	repairCost := finite(property.RepairCost)
	arv := finite(property.ARV)

	flip := resolveFlipModel(criteria, purchasePrice)

	closingCosts := purchasePrice * flip.ClosingCostsPct
	totalInvestment := purchasePrice + repairCost + closingCosts + flip.HoldingCosts

	sellingCosts := arv * flip.SellingCostsPct
	grossProfit := arv - totalInvestment
	netProfit := arv - totalInvestment - sellingCosts
	roi := 0.0
	if totalInvestment > 0 {
		roi = netProfit / totalInvestment * 100
	}

	// MAO is a rule-of-thumb offer ceiling; it does not look at closing or
	// holding costs.
	mao := 0.0
	if arv > 0 {
		mao = arv*flip.MAORulePct - repairCost
	}

	rent := rental.MonthlyRent
	vacancyLoss := rent * rental.VacancyRate / 100
	managementFee := rent * rental.ManagementFee / 100
	maintenance := rent * rental.MaintenanceRate / 100
	insuranceMonthly := rental.InsuranceAnnual / 12
	propertyTaxMonthly := rental.PropertyTaxAnnual / 12
	monthlyExpenses := vacancyLoss + managementFee + maintenance +
		insuranceMonthly + propertyTaxMonthly + rental.HOAMonthly

	loanAmount := rental.LoanAmount
	if loanAmount == 0 {
		loanAmount = purchasePrice * DefaultLoanToValue
	}
	monthlyMortgage := MonthlyMortgagePayment(loanAmount, rental.InterestRate, rental.LoanTermYears)

	monthlyCashFlow := rent - monthlyExpenses - monthlyMortgage
	annualCashFlow := monthlyCashFlow * 12

	cashInvested := purchasePrice - loanAmount + closingCosts + repairCost
	cashOnCash := 0.0
	if cashInvested > 0 {
		cashOnCash = annualCashFlow / cashInvested * 100
	}

	noi := (rent - monthlyExpenses) * 12
	propertyValue := arv
	if arv <= 0 {
		propertyValue = purchasePrice + repairCost
	}
	capRate := 0.0
	if propertyValue > 0 {
		capRate = noi / propertyValue * 100
	}

	grm := 0.0
	if rent > 0 {
		grm = propertyValue / (rent * 12)
	}

	return domain.DealMetrics{
		PurchasePrice:   roundWhole(purchasePrice),
		RepairCost:      roundWhole(repairCost),
		ClosingCosts:    roundWhole(closingCosts),
		HoldingCosts:    roundWhole(flip.HoldingCosts),
		TotalInvestment: roundWhole(totalInvestment),

		ARV:         roundWhole(arv),
		GrossProfit: roundWhole(grossProfit),
		NetProfit:   roundWhole(netProfit),
		ROI:         roundTo2Decimals(roi),
		MAO:         roundWhole(mao),

		MonthlyRent:         roundWhole(rent),
		MonthlyExpenses:     roundWhole(monthlyExpenses),
		MonthlyMortgage:     roundWhole(monthlyMortgage),
		MonthlyCashFlow:     roundWhole(monthlyCashFlow),
		AnnualCashFlow:      roundWhole(annualCashFlow),
		CashOnCashReturn:    roundTo2Decimals(cashOnCash),
		CapRate:             roundTo2Decimals(capRate),
		GrossRentMultiplier: roundTo2Decimals(grm),

		HasFlipData:   purchasePrice > 0 || arv > 0,
		HasRentalData: rent > 0,
	}
}

// MonthlyMortgagePayment is the fixed-rate annuity payment, rounded to cents.
// It returns 0 unless principal, rate and term are all positive.
func MonthlyMortgagePayment(principal, annualRatePct, termYears float64) float64 {
	if !(principal > 0) || !(annualRatePct > 0) || !(termYears > 0) {
		return 0
	}

	monthlyRate := annualRatePct / 100 / 12
	payments := termYears * 12
	growth := math.Pow(1+monthlyRate, payments)
	if math.IsInf(growth, 1) {
		// limit of the annuity formula: interest-only
		return roundTo2Decimals(principal * monthlyRate)
	}

	return roundTo2Decimals(principal * monthlyRate * growth / (growth - 1))
}

// roundWhole rounds halves toward positive infinity, matching the mobile
// client: 2.5 -> 3, -2.5 -> -2. Non-finite values become 0.
func roundWhole(v float64) float64 {
	v = finite(v)
	r := math.Round(v) // halves away from zero
	if v < 0 && v-r == 0.5 {
		r++
	}
	if r == 0 {
		return 0 // no -0 in output
	}
	return r
}

// roundTo2Decimals rounds to cents with the same half-up rule.
func roundTo2Decimals(v float64) float64 {
	return roundWhole(finite(v)*100) / 100
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func present(v *float64) float64 {
	if v == nil {
		return 0
	}
	return finite(*v)
}
