package service

import (
	"fmt"
	"math"

	"deal-analyzer/domain"
)

type MortgageService struct{}

func NewMortgageService() *MortgageService {
	return &MortgageService{}
}

// Calculate quotes a fixed-rate mortgage. Unlike MonthlyMortgagePayment it
// rejects out-of-range input instead of returning zero.
func (s *MortgageService) Calculate(
	input domain.MortgageInput,
) (domain.MortgageResult, error) {

	if err := validateMortgage(input); err != nil {
		return domain.MortgageResult{}, err
	}

	months := input.TermYears * 12

	var payment float64
	if input.InterestRate == 0 {
		payment = roundTo2Decimals(input.Amount / float64(months))
	} else {
		payment = MonthlyMortgagePayment(input.Amount, input.InterestRate, float64(input.TermYears))
	}

	total := payment * float64(months)
	interest := total - input.Amount

	return domain.MortgageResult{
		MonthlyPayment: payment,
		TotalPayment:   roundTo2Decimals(total),
		TotalInterest:  roundTo2Decimals(interest),
	}, nil
}

func validateMortgage(input domain.MortgageInput) error {
	switch {
	case math.IsNaN(input.Amount) || input.Amount <= 0:
		return fmt.Errorf("%w: amount must be positive", ErrInvalidMortgage)
	case input.Amount > MaxMortgageAmount:
		return fmt.Errorf("%w: amount exceeds the maximum of $%.2f", ErrInvalidMortgage, MaxMortgageAmount)
	case math.IsNaN(input.InterestRate) || input.InterestRate < 0:
		return fmt.Errorf("%w: interest rate must not be negative", ErrInvalidMortgage)
	case input.InterestRate > MaxMortgageRate:
		return fmt.Errorf("%w: interest rate exceeds the maximum of %.2f%%", ErrInvalidMortgage, MaxMortgageRate)
	case input.TermYears < MinMortgageTermYears:
		return fmt.Errorf("%w: term must be at least %d year", ErrInvalidMortgage, MinMortgageTermYears)
	case input.TermYears > MaxMortgageTermYears:
		return fmt.Errorf("%w: term exceeds the maximum of %d years", ErrInvalidMortgage, MaxMortgageTermYears)
	}
	return nil
}
