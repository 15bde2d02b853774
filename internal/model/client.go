package model

import (
	"fmt"
	"slices"
)

// RiskTolerance is the client's declared appetite for risk.
type RiskTolerance string

const (
	RiskConservative RiskTolerance = "Conservative"
	RiskModerate     RiskTolerance = "Moderate"
	RiskGrowth       RiskTolerance = "Growth"
	RiskAggressive   RiskTolerance = "Aggressive"
)

// RiskTolerances lists every recognised risk tolerance, most cautious first.
var RiskTolerances = []RiskTolerance{RiskConservative, RiskModerate, RiskGrowth, RiskAggressive}

func (r RiskTolerance) Valid() bool { return slices.Contains(RiskTolerances, r) }

func (r *RiskTolerance) UnmarshalText(b []byte) error {
	v, err := parseEnum("risk tolerance", string(b), RiskTolerances)
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// FinancialGoal is what the client is investing towards.
type FinancialGoal string

const (
	GoalRetirement         FinancialGoal = "Retirement"
	GoalEducation          FinancialGoal = "Education"
	GoalWealthGrowth       FinancialGoal = "Wealth Growth"
	GoalShortTermSavings   FinancialGoal = "Short-term Savings"
	GoalHomePurchase       FinancialGoal = "Home Purchase"
	GoalBusinessInvestment FinancialGoal = "Business Investment"
	GoalLegacyPlanning     FinancialGoal = "Legacy Planning"
)

var FinancialGoals = []FinancialGoal{
	GoalRetirement, GoalEducation, GoalWealthGrowth, GoalShortTermSavings,
	GoalHomePurchase, GoalBusinessInvestment, GoalLegacyPlanning,
}

func (g FinancialGoal) Valid() bool { return slices.Contains(FinancialGoals, g) }

func (g *FinancialGoal) UnmarshalText(b []byte) error {
	v, err := parseEnum("financial goal", string(b), FinancialGoals)
	if err != nil {
		return err
	}
	*g = v
	return nil
}

// Experience is the client's self-reported investing experience.
type Experience string

const (
	ExperienceNone      Experience = "None"
	ExperienceLimited   Experience = "Limited"
	ExperienceModerate  Experience = "Moderate"
	ExperienceExtensive Experience = "Extensive"
)

var Experiences = []Experience{ExperienceNone, ExperienceLimited, ExperienceModerate, ExperienceExtensive}

func (e Experience) Valid() bool { return slices.Contains(Experiences, e) }

func (e *Experience) UnmarshalText(b []byte) error {
	v, err := parseEnum("investment experience", string(b), Experiences)
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// ClientProfile is a read-only snapshot of a client.
type ClientProfile struct {
	ClientID             string        `json:"client_id"`
	Name                 string        `json:"name"`
	Email                string        `json:"email"`
	Age                  int           `json:"age"`
	Income               float64       `json:"income"`
	RiskTolerance        RiskTolerance `json:"risk_tolerance"`
	FinancialGoal        FinancialGoal `json:"financial_goal"`
	TimeHorizon          int           `json:"time_horizon"`
	InvestmentExperience Experience    `json:"investment_experience"`
	LastConsultation     Date          `json:"last_consultation"`
}

// Validate rejects profiles carrying values outside the closed enumerations.
// Experience is optional and only checked when present.
func (c *ClientProfile) Validate() error {
	if !c.RiskTolerance.Valid() {
		return fmt.Errorf("client %s: %w", c.ClientID, invalidEnum("risk tolerance", string(c.RiskTolerance)))
	}
	if !c.FinancialGoal.Valid() {
		return fmt.Errorf("client %s: %w", c.ClientID, invalidEnum("financial goal", string(c.FinancialGoal)))
	}
	if c.InvestmentExperience != "" && !c.InvestmentExperience.Valid() {
		return fmt.Errorf("client %s: %w", c.ClientID, invalidEnum("investment experience", string(c.InvestmentExperience)))
	}
	return nil
}
