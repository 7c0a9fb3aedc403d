package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrUnknownField = errors.New("unknown field")
	ErrInvalidValue = errors.New("invalid value")
)

// Update replaces one field of a record and returns the new record.
// RegistrationRecord holds no reference types, so the input is never shared with the result.
type Update func(RegistrationRecord) (RegistrationRecord, error)

// PainPointField names a pain point checkbox
type PainPointField string

const (
	PainPointImages      PainPointField = "images"
	PainPointInventory   PainPointField = "inventory"
	PainPointManualTasks PainPointField = "manualTasks"
	PainPointOther       PainPointField = "other"
)

// DietaryField names a dietary checkbox
type DietaryField string

const (
	DietaryNoPreference DietaryField = "noPreference"
	DietaryVegetarian   DietaryField = "vegetarian"
	DietaryVegan        DietaryField = "vegan"
	DietaryHalal        DietaryField = "halal"
	DietaryGlutenFree   DietaryField = "glutenFree"
	DietaryDairyFree    DietaryField = "dairyFree"
	DietaryOther        DietaryField = "other"
)

// Apply runs updates in order against record. On error the original record is returned unchanged.
func Apply(record RegistrationRecord, updates ...Update) (RegistrationRecord, error) {
	next := record
	for _, update := range updates {
		var err error
		if next, err = update(next); err != nil {
			return record, err
		}
	}
	return next, nil
}

func SetName(name string) Update {
	return func(r RegistrationRecord) (RegistrationRecord, error) {
		r.Name = name
		return r, nil
	}
}

func SetEmail(email string) Update {
	return func(r RegistrationRecord) (RegistrationRecord, error) {
		r.Email = email
		return r, nil
	}
}

// SetToolInstalled sets the installed answer of the tool at index
func SetToolInstalled(index int, installed string) Update {
	return func(r RegistrationRecord) (RegistrationRecord, error) {
		if err := checkToolIndex(index); err != nil {
			return r, err
		}
		if !ValidInstalled(installed) {
			return r, fmt.Errorf("%w: installed must be Yes or No, got %q", ErrInvalidValue, installed)
		}
		r.Tools[index].Installed = installed
		return r, nil
	}
}

// SetToolSkillLevel sets the skill level of the tool at index
func SetToolSkillLevel(index int, level string) Update {
	return func(r RegistrationRecord) (RegistrationRecord, error) {
		if err := checkToolIndex(index); err != nil {
			return r, err
		}
		if !ValidSkillLevel(level) {
			return r, fmt.Errorf("%w: skill level must be between 0 and %d, got %q", ErrInvalidValue, MaxSkillLevel, level)
		}
		r.Tools[index].SkillLevel = level
		return r, nil
	}
}

func SetPainPoint(field PainPointField, checked bool) Update {
	return func(r RegistrationRecord) (RegistrationRecord, error) {
		switch field {
		case PainPointImages:
			r.PainPoints.Images = checked
		case PainPointInventory:
			r.PainPoints.Inventory = checked
		case PainPointManualTasks:
			r.PainPoints.ManualTasks = checked
		case PainPointOther:
			r.PainPoints.Other = checked
		default:
			return r, fmt.Errorf("%w: painPoints.%s", ErrUnknownField, field)
		}
		return r, nil
	}
}

func SetPainPointOtherText(text string) Update {
	return func(r RegistrationRecord) (RegistrationRecord, error) {
		r.PainPoints.OtherText = text
		return r, nil
	}
}

func SetDietary(field DietaryField, checked bool) Update {
	return func(r RegistrationRecord) (RegistrationRecord, error) {
		switch field {
		case DietaryNoPreference:
			r.Dietary.NoPreference = checked
		case DietaryVegetarian:
			r.Dietary.Vegetarian = checked
		case DietaryVegan:
			r.Dietary.Vegan = checked
		case DietaryHalal:
			r.Dietary.Halal = checked
		case DietaryGlutenFree:
			r.Dietary.GlutenFree = checked
		case DietaryDairyFree:
			r.Dietary.DairyFree = checked
		case DietaryOther:
			r.Dietary.Other = checked
		default:
			return r, fmt.Errorf("%w: dietary.%s", ErrUnknownField, field)
		}
		return r, nil
	}
}

func SetDietaryOtherText(text string) Update {
	return func(r RegistrationRecord) (RegistrationRecord, error) {
		r.Dietary.OtherText = text
		return r, nil
	}
}

func checkToolIndex(index int) error {
	if index < 0 || index >= ToolCount {
		return fmt.Errorf("%w: tool index %d out of range", ErrUnknownField, index)
	}
	return nil
}

// ParseUpdate builds an Update from a field path such as "email",
// "tools[1].skillLevel", "painPoints.other" or "dietary.otherText".
func ParseUpdate(path, value string) (Update, error) {
	switch path {
	case "name":
		return SetName(value), nil
	case "email":
		return SetEmail(value), nil
	case "painPoints.otherText":
		return SetPainPointOtherText(value), nil
	case "dietary.otherText":
		return SetDietaryOtherText(value), nil
	}

	if field, ok := strings.CutPrefix(path, "painPoints."); ok {
		checked, err := parseBool(value)
		if err != nil {
			return nil, err
		}
		return SetPainPoint(PainPointField(field), checked), nil
	}

	if field, ok := strings.CutPrefix(path, "dietary."); ok {
		checked, err := parseBool(value)
		if err != nil {
			return nil, err
		}
		return SetDietary(DietaryField(field), checked), nil
	}

	if rest, ok := strings.CutPrefix(path, "tools["); ok {
		indexText, field, found := strings.Cut(rest, "].")
		if !found {
			return nil, fmt.Errorf("%w: %s", ErrUnknownField, path)
		}
		index, err := strconv.Atoi(indexText)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownField, path)
		}
		switch field {
		case "installed":
			return SetToolInstalled(index, value), nil
		case "skillLevel":
			return SetToolSkillLevel(index, value), nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownField, path)
}

// parseBool accepts the values browsers and JSON clients send for checkboxes
func parseBool(value string) (bool, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch normalized {
	case "on":
		return true, nil
	case "off", "":
		return false, nil
	}
	checked, err := strconv.ParseBool(normalized)
	if err != nil {
		return false, fmt.Errorf("%w: expected a boolean, got %q", ErrInvalidValue, value)
	}
	return checked, nil
}
