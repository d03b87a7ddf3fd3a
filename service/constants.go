package service

// Rental defaults applied when an assumption is absent.
const (
	DefaultVacancyRate       = 8.0 // % of rent
	DefaultManagementFee     = 10.0
	DefaultMaintenanceRate   = 5.0
	DefaultInsuranceAnnual   = 1200.0
	DefaultPropertyTaxAnnual = 3000.0
	DefaultInterestRate      = 7.0 // annual %
	DefaultLoanTermYears     = 30.0
	DefaultLoanToValue       = 0.80 // financed share of purchase price when no loan amount is given
)

// Flip defaults applied when a buying criterion is absent.
const (
	DefaultClosingCostsPct = 0.03
	DefaultHoldingCostPct  = 0.02 // of purchase price
	DefaultSellingCostsPct = 0.08
	DefaultMAORulePct      = 0.70
)

const (
	MaxMortgageAmount    = 1_000_000_000.0
	MaxMortgageRate      = 100.0 // annual %
	MaxMortgageTermYears = 50
	MinMortgageTermYears = 1

	MaxBatchDeals = 100

	cacheKeyPrefix = "deal-analysis:"
)
