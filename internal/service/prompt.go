package service

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/pageza/dietplan/backend/internal/models"
)

// DietPrompt holds the values rendered into the diet plan prompt.
type DietPrompt struct {
	DietType   string
	Age        string
	Weight     string
	History    string
	Guidelines string
}

var systemPromptTmpl = template.Must(template.New("system").Parse(
	`You are a professional dietician specialized in {{.DietType}} diets. Follow the user's instructions EXACTLY.`))

var userPromptTmpl = template.Must(template.New("user").Parse(`You are creating a 7-day {{.DietType}} diet plan with ZERO introduction, explanation, or disclaimers.

Client details:
- Age: {{.Age}}
- Weight: {{.Weight}} kg
- Medical History: {{.History}}

{{.Guidelines}}

CONTENT RESTRICTIONS:
- ⛔ DO NOT include any greetings, introductions, or conclusions
- ⛔ DO NOT include any professional commentary
- ⛔ DO NOT explain your reasoning or choices

OUTPUT FORMAT:
Return ONLY a structured meal plan with this exact format for 7 days:
{{range .Days}}
Day {{.}}:
- Breakfast: [specific foods and portions]
- Lunch: [specific foods and portions]
- Dinner: [specific foods and portions]
- Snacks: [specific foods and portions]
{{end}}
(Continue similarly up to Day 7)
`))

// NewDietPrompt collects prompt values for a validated request.
func NewDietPrompt(diet models.DietType, age, weight, history string) DietPrompt {
	return DietPrompt{
		DietType:   diet.Name,
		Age:        age,
		Weight:     weight,
		History:    history,
		Guidelines: diet.Guidelines(),
	}
}

// SystemMessage renders the system role message.
func (p DietPrompt) SystemMessage() (string, error) {
	var b strings.Builder
	if err := systemPromptTmpl.Execute(&b, p); err != nil {
		return "", fmt.Errorf("failed to render system prompt: %w", err)
	}
	return b.String(), nil
}

// UserMessage renders the user role message: client details, guidelines,
// content restrictions and the 7-day output format.
func (p DietPrompt) UserMessage() (string, error) {
	var b strings.Builder
	data := struct {
		DietPrompt
		Days []int
	}{p, []int{1, 2}}
	if err := userPromptTmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("failed to render user prompt: %w", err)
	}
	return b.String(), nil
}
