package models

// ToolCount is the number of tools every attendee is asked about
const ToolCount = 3

// ToolNames lists the predefined tools in display order
var ToolNames = [ToolCount]string{"Claude", "Claude Code", "n8n"}

// Allowed answers for ToolAnswer.Installed
const (
	InstalledUnset = ""
	InstalledYes   = "Yes"
	InstalledNo    = "No"
)

// MaxSkillLevel is the highest self-assessed skill level
const MaxSkillLevel = 5

// RegistrationRecord represents the answers one attendee submits.
// The JSON shape is the payload delivered to the webhook.
type RegistrationRecord struct {
	Name       string                `json:"name"`
	Email      string                `json:"email"`
	Tools      [ToolCount]ToolAnswer `json:"tools"`
	PainPoints PainPoints            `json:"painPoints"`
	Dietary    Dietary               `json:"dietary"`
}

// ToolAnswer holds the installation status and skill level for one tool
type ToolAnswer struct {
	Name       string `json:"name"`
	Installed  string `json:"installed"`
	SkillLevel string `json:"skillLevel"`
}

// PainPoints represents the business pain point selections
type PainPoints struct {
	Images      bool   `json:"images"`
	Inventory   bool   `json:"inventory"`
	ManualTasks bool   `json:"manualTasks"`
	Other       bool   `json:"other"`
	OtherText   string `json:"otherText"`
}

// Dietary represents the dietary and refreshment selections
type Dietary struct {
	NoPreference bool   `json:"noPreference"`
	Vegetarian   bool   `json:"vegetarian"`
	Vegan        bool   `json:"vegan"`
	Halal        bool   `json:"halal"`
	GlutenFree   bool   `json:"glutenFree"`
	DairyFree    bool   `json:"dairyFree"`
	Other        bool   `json:"other"`
	OtherText    string `json:"otherText"`
}

// NewRegistrationRecord returns an empty record with the fixed tool list
func NewRegistrationRecord() RegistrationRecord {
	var record RegistrationRecord
	for i, name := range ToolNames {
		record.Tools[i] = ToolAnswer{Name: name}
	}
	return record
}

// ValidInstalled reports whether v is an accepted installed answer
func ValidInstalled(v string) bool {
	switch v {
	case InstalledUnset, InstalledYes, InstalledNo:
		return true
	}
	return false
}

// ValidSkillLevel reports whether v is empty or a single numeral 0-5
func ValidSkillLevel(v string) bool {
	if v == "" {
		return true
	}
	return len(v) == 1 && v[0] >= '0' && v[0] <= '0'+MaxSkillLevel
}
