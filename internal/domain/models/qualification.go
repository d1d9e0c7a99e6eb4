package models

import "github.com/go-playground/validator/v10"

// QualificationScores are the four sub-scores collected during the initial
// assessment, each on a 0-10 scale.
type QualificationScores struct {
	RoleAppeal      int `validate:"min=0,max=10"`
	CompanyFit      int `validate:"min=0,max=10"`
	GrowthPotential int `validate:"min=0,max=10"`
	Likelihood      int `validate:"min=0,max=10"`
}

func (s QualificationScores) Total() int {
	return s.RoleAppeal + s.CompanyFit + s.GrowthPotential + s.Likelihood
}

func (s QualificationScores) Validate() error {
	return validator.New().Struct(s)
}

func (s QualificationScores) Breakdown() PriorityBreakdown {
	return PriorityBreakdown{
		RoleAppeal:      s.RoleAppeal,
		CompanyFit:      s.CompanyFit,
		GrowthPotential: s.GrowthPotential,
		Likelihood:      s.Likelihood,
	}
}
