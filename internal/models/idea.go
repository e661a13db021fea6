package models

import (
	"fmt"
	"strings"

	"github.com/ajharbinger/ideascore/internal/errors"
)

// Customer sizes
const (
	CustomerIndividual = "Individual"
	CustomerSMB        = "SMB"
	CustomerMidMarket  = "Mid-Market"
	CustomerEnterprise = "Enterprise"
)

// Revenue models
const (
	RevenueSubscription   = "Subscription"
	RevenueOneTime        = "One-time"
	RevenueMarketplaceFee = "Marketplace Fee"
	RevenueAds            = "Ads"
)

const (
	maxIdeaNameLength   = 255
	minDescriptionWords = 5
)

// Idea holds the attributes of a startup idea submitted for evaluation
type Idea struct {
	Name               string  `json:"name" yaml:"name"`
	Description        string  `json:"description" yaml:"description"`
	Industry           string  `json:"industry" yaml:"industry"`
	TargetCustomerType string  `json:"target_customer_type" yaml:"target_customer_type"`
	Geography          string  `json:"geography" yaml:"geography"`
	CustomerSize       string  `json:"customer_size" yaml:"customer_size"`
	RevenueModel       string  `json:"revenue_model" yaml:"revenue_model"`
	PricingDetails     string  `json:"pricing_details" yaml:"pricing_details"`
	TeamSize           int     `json:"team_size" yaml:"team_size"`
	TechComplexity     float64 `json:"tech_complexity" yaml:"tech_complexity"`
	RegulatoryRisk     float64 `json:"regulatory_risk" yaml:"regulatory_risk"`
}

// WithDefaults returns a copy with trimmed text fields and default customer size and revenue model
func (i Idea) WithDefaults() Idea {
	i.Name = strings.TrimSpace(i.Name)
	i.Description = strings.TrimSpace(i.Description)
	i.Industry = strings.TrimSpace(i.Industry)
	i.TargetCustomerType = strings.TrimSpace(i.TargetCustomerType)
	i.Geography = strings.TrimSpace(i.Geography)
	if strings.TrimSpace(i.CustomerSize) == "" {
		i.CustomerSize = CustomerSMB
	}
	if strings.TrimSpace(i.RevenueModel) == "" {
		i.RevenueModel = RevenueSubscription
	}
	return i
}

// Validate checks the idea before it enters the pipeline
func (i Idea) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return errors.ValidationError("name is required", nil).WithOperation("validate_idea")
	}
	if len(i.Name) > maxIdeaNameLength {
		return errors.ValidationError(fmt.Sprintf("name must be at most %d characters", maxIdeaNameLength), nil).
			WithOperation("validate_idea")
	}
	if strings.TrimSpace(i.Description) == "" {
		return errors.ValidationError("description is required", nil).WithOperation("validate_idea")
	}
	if len(strings.Fields(i.Description)) < minDescriptionWords {
		return errors.ValidationError(fmt.Sprintf("description must contain at least %d words", minDescriptionWords), nil).
			WithOperation("validate_idea")
	}
	if strings.TrimSpace(i.Industry) == "" {
		return errors.ValidationError("industry is required", nil).WithOperation("validate_idea")
	}
	if i.TechComplexity < 0 || i.TechComplexity > 1 {
		return errors.ValidationError("tech_complexity must be between 0 and 1", nil).
			WithDetails(fmt.Sprintf("got %v", i.TechComplexity))
	}
	if i.RegulatoryRisk < 0 || i.RegulatoryRisk > 1 {
		return errors.ValidationError("regulatory_risk must be between 0 and 1", nil).
			WithDetails(fmt.Sprintf("got %v", i.RegulatoryRisk))
	}
	if i.TeamSize < 0 {
		return errors.ValidationError("team_size cannot be negative", nil)
	}
	return nil
}
