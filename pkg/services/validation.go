package services

import (
	"regexp"
	"strings"

	"workshop-registration/pkg/config"
	"workshop-registration/pkg/models"
)

// Validation rules, in the order they are checked
const (
	RuleNameRequired    = "name_required"
	RuleEmailRequired   = "email_required"
	RuleEmailInvalid    = "email_invalid"
	RuleEmailNotAllowed = "email_not_allowed"
	RulePainPointOther  = "pain_point_other"
	RuleDietaryOther    = "dietary_other"
)

const (
	msgNameRequired    = "Name is required"
	msgEmailRequired   = "Email is required"
	msgEmailInvalid    = "Please enter a valid email address"
	msgEmailNotAllowed = "This email address is not registered for the workshop. " +
		"Please use the email you used when purchasing your ticket. " +
		"If someone else purchased your ticket, use the email address you provided to us when we collected attendee information."
	msgPainPointOther = `Please specify the "Other" pain point`
	msgDietaryOther   = `Please specify your "Other" dietary requirements`
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidationError is a user-input defect. Message is shown to the attendee as-is.
type ValidationError struct {
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validator checks a registration record before it is submitted
type Validator struct {
	allowList config.AllowList
}

// NewValidator creates a validator gated by allowList; an empty list disables the email check
func NewValidator(allowList config.AllowList) *Validator {
	return &Validator{allowList: allowList}
}

// Validate returns nil or the first *ValidationError the record violates
func (v *Validator) Validate(record models.RegistrationRecord) error {
	if strings.TrimSpace(record.Name) == "" {
		return &ValidationError{Rule: RuleNameRequired, Message: msgNameRequired}
	}

	if strings.TrimSpace(record.Email) == "" {
		return &ValidationError{Rule: RuleEmailRequired, Message: msgEmailRequired}
	}

	if !emailPattern.MatchString(record.Email) {
		return &ValidationError{Rule: RuleEmailInvalid, Message: msgEmailInvalid}
	}

	if v.allowList.Configured() && !v.allowList.Contains(record.Email) {
		return &ValidationError{Rule: RuleEmailNotAllowed, Message: msgEmailNotAllowed}
	}

	if record.PainPoints.Other && strings.TrimSpace(record.PainPoints.OtherText) == "" {
		return &ValidationError{Rule: RulePainPointOther, Message: msgPainPointOther}
	}

	if record.Dietary.Other && strings.TrimSpace(record.Dietary.OtherText) == "" {
		return &ValidationError{Rule: RuleDietaryOther, Message: msgDietaryOther}
	}

	return nil
}
