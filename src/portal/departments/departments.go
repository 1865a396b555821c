package departments

import "strings"

// Question is a department-specific supplemental prompt the applicant must answer.
type Question struct {
	Key    string `json:"key"`
	Prompt string `json:"prompt"`
}

type Department struct {
	Code         string     `json:"code"`
	Name         string     `json:"name"`
	Supplemental []Question `json:"supplemental,omitempty"`
}

// The catalog is fixed; submissions naming anything else are rejected.
var catalog = []Department{
	{
		Code: "doj",
		Name: "Department of Justice",
		Supplemental: []Question{
			{Key: "legal_background", Prompt: "Describe any courtroom or legal roleplay experience you have."},
			{Key: "case_scenario", Prompt: "A defendant refuses counsel mid-trial. How do you proceed?"},
		},
	},
	{
		Code: "lspd",
		Name: "Los Santos Police Department",
		Supplemental: []Question{
			{Key: "patrol_experience", Prompt: "Describe your prior patrol or law enforcement roleplay experience."},
			{Key: "force_policy", Prompt: "When is lethal force justified under department policy?"},
			{Key: "pursuit_scenario", Prompt: "A pursuit enters a crowded area. What do you do?"},
		},
	},
	{
		Code: "lssd",
		Name: "Los Santos Sheriff's Department",
	},
	{
		Code: "lsfd",
		Name: "Los Santos Fire Department",
	},
}

func All() []Department {
	out := make([]Department, len(catalog))
	copy(out, catalog)
	return out
}

func Get(code string) (Department, bool) {
	for _, d := range catalog {
		if d.Code == code {
			return d, true
		}
	}
	return Department{}, false
}

func Valid(code string) bool {
	_, ok := Get(code)
	return ok
}

// DisplayName returns the human-readable name, falling back to the raw code.
func DisplayName(code string) string {
	if d, ok := Get(code); ok {
		return d.Name
	}
	return code
}

// MissingSupplemental returns the keys of required questions whose answers are
// absent or blank after trimming. Departments without supplemental questions
// always return nil.
func MissingSupplemental(code string, answers map[string]string) []string {
	d, ok := Get(code)
	if !ok {
		return nil
	}
	var missing []string
	for _, q := range d.Supplemental {
		if strings.TrimSpace(answers[q.Key]) == "" {
			missing = append(missing, q.Key)
		}
	}
	return missing
}
