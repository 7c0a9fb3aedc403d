package api

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"workshop-registration/pkg/form"
	"workshop-registration/pkg/models"
)

// registrationForm is the full HTML form post. Unchecked boxes are absent and bind as false.
type registrationForm struct {
	Name  string `form:"name"`
	Email string `form:"email"`

	// One value per tool, in models.ToolNames order
	Installed  []string `form:"installed" binding:"max=3,dive,installed"`
	SkillLevel []string `form:"skillLevel" binding:"max=3,dive,skilllevel"`

	PainImages      bool   `form:"painPoints.images"`
	PainInventory   bool   `form:"painPoints.inventory"`
	PainManualTasks bool   `form:"painPoints.manualTasks"`
	PainOther       bool   `form:"painPoints.other"`
	PainOtherText   string `form:"painPoints.otherText"`

	DietNoPreference bool   `form:"dietary.noPreference"`
	DietVegetarian   bool   `form:"dietary.vegetarian"`
	DietVegan        bool   `form:"dietary.vegan"`
	DietHalal        bool   `form:"dietary.halal"`
	DietGlutenFree   bool   `form:"dietary.glutenFree"`
	DietDairyFree    bool   `form:"dietary.dairyFree"`
	DietOther        bool   `form:"dietary.other"`
	DietOtherText    string `form:"dietary.otherText"`
}

// updates replaces every field of the record with the posted values
func (f registrationForm) updates() []models.Update {
	updates := []models.Update{
		models.SetName(f.Name),
		models.SetEmail(f.Email),
	}

	for i := 0; i < models.ToolCount; i++ {
		updates = append(updates,
			models.SetToolInstalled(i, valueAt(f.Installed, i)),
			models.SetToolSkillLevel(i, valueAt(f.SkillLevel, i)),
		)
	}

	return append(updates,
		models.SetPainPoint(models.PainPointImages, f.PainImages),
		models.SetPainPoint(models.PainPointInventory, f.PainInventory),
		models.SetPainPoint(models.PainPointManualTasks, f.PainManualTasks),
		models.SetPainPoint(models.PainPointOther, f.PainOther),
		models.SetPainPointOtherText(f.PainOtherText),
		models.SetDietary(models.DietaryNoPreference, f.DietNoPreference),
		models.SetDietary(models.DietaryVegetarian, f.DietVegetarian),
		models.SetDietary(models.DietaryVegan, f.DietVegan),
		models.SetDietary(models.DietaryHalal, f.DietHalal),
		models.SetDietary(models.DietaryGlutenFree, f.DietGlutenFree),
		models.SetDietary(models.DietaryDairyFree, f.DietDairyFree),
		models.SetDietary(models.DietaryOther, f.DietOther),
		models.SetDietaryOtherText(f.DietOtherText),
	)
}

func valueAt(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}

// fieldUpdate addresses one field by path, e.g. "tools[0].installed"
type fieldUpdate struct {
	Field string `json:"field" binding:"required"`
	Value any    `json:"value"`
}

// updateFormRequest is the body of PATCH /api/form
type updateFormRequest struct {
	Updates []fieldUpdate `json:"updates" binding:"required,min=1,dive"`
}

func (r updateFormRequest) updates() ([]models.Update, error) {
	updates := make([]models.Update, 0, len(r.Updates))
	for _, u := range r.Updates {
		value, err := stringValue(u.Value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", u.Field, err)
		}
		update, err := models.ParseUpdate(u.Field, value)
		if err != nil {
			return nil, err
		}
		updates = append(updates, update)
	}
	return updates, nil
}

// stringValue accepts JSON strings, booleans and numbers
func stringValue(v any) (string, error) {
	switch value := v.(type) {
	case nil:
		return "", nil
	case string:
		return value, nil
	case bool:
		return strconv.FormatBool(value), nil
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("%w: unsupported value type %T", models.ErrInvalidValue, v)
	}
}

// formStateResponse is the JSON view of a form snapshot
type formStateResponse struct {
	Phase     form.Phase                `json:"phase"`
	Loading   bool                      `json:"loading"`
	Submitted bool                      `json:"submitted"`
	Error     string                    `json:"error"`
	Record    models.RegistrationRecord `json:"record"`
}

func newFormStateResponse(snap form.Snapshot) formStateResponse {
	return formStateResponse{
		Phase:     snap.Phase(),
		Loading:   snap.Loading,
		Submitted: snap.Submitted,
		Error:     snap.Error,
		Record:    snap.Record,
	}
}

// RegisterValidators adds the tool answer constraints to gin's binding validator
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected binding validator engine")
	}

	if err := v.RegisterValidation("installed", func(fl validator.FieldLevel) bool {
		return models.ValidInstalled(fl.Field().String())
	}); err != nil {
		return fmt.Errorf("register installed validation: %w", err)
	}

	if err := v.RegisterValidation("skilllevel", func(fl validator.FieldLevel) bool {
		return models.ValidSkillLevel(fl.Field().String())
	}); err != nil {
		return fmt.Errorf("register skilllevel validation: %w", err)
	}
	return nil
}
