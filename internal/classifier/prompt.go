package classifier

import (
	"fmt"
	"strings"

	"fjacquet/expense-ledger/internal/models"
)

// BuildPrompt renders the classification request for one description.
// The system instruction lists the category labels, their definitions when
// available, and asks for the bare label only.
func BuildPrompt(set *models.CategorySet, description string) Prompt {
	labels := set.Labels()

	var sb strings.Builder
	sb.WriteString("You are an assistant that categorizes expenses into one of the following categories: ")
	sb.WriteString(strings.Join(labels, ", "))
	sb.WriteString(". Only respond with the category name.")

	var definitions []string
	for _, c := range set.Categories {
		if strings.TrimSpace(c.Description) == "" {
			continue
		}
		definitions = append(definitions, fmt.Sprintf("- **%s**: %s", c.Name, c.Description))
	}
	if len(definitions) > 0 {
		sb.WriteString("\n\n**Definitions:**\n")
		sb.WriteString(strings.Join(definitions, "\n"))
	}

	return Prompt{
		System: sb.String(),
		User:   fmt.Sprintf("Description: %s\n\nCategory:", description),
	}
}

// Combined joins the system instruction and the user message for providers
// that take a single prompt string.
func (p Prompt) Combined() string {
	if p.System == "" {
		return p.User
	}
	return p.System + "\n\n" + p.User
}
