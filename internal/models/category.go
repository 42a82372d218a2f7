package models

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// CategoryConfig is one label of a category set together with the definition
// given to the classification model.
type CategoryConfig struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// CategoriesConfig represents the structure of a category profile YAML file.
type CategoriesConfig struct {
	Name       string           `yaml:"name"`
	Overflow   string           `yaml:"overflow"`
	Categories []CategoryConfig `yaml:"categories"`
}

// CategorySet is the closed, ordered set of labels a ledger uses, plus the
// overflow label. It is built once at startup and never modified.
type CategorySet struct {
	Name       string
	Overflow   string
	Categories []CategoryConfig
}

// NewCategorySet validates and builds a category set.
func NewCategorySet(name, overflow string, categories []CategoryConfig) (*CategorySet, error) {
	if len(categories) == 0 {
		return nil, fmt.Errorf("category set %q has no categories", name)
	}
	if strings.TrimSpace(overflow) == "" {
		overflow = CategoryOthers
	}

	seen := make(map[string]bool, len(categories))
	copied := make([]CategoryConfig, 0, len(categories))
	for _, c := range categories {
		label := strings.TrimSpace(c.Name)
		if label == "" {
			return nil, fmt.Errorf("category set %q contains an empty label", name)
		}
		if seen[label] {
			return nil, fmt.Errorf("category set %q contains duplicate label %q", name, label)
		}
		seen[label] = true
		copied = append(copied, CategoryConfig{Name: label, Description: c.Description})
	}

	return &CategorySet{Name: name, Overflow: overflow, Categories: copied}, nil
}

// Labels returns the configured labels in order, without the overflow label
// unless it is itself configured.
func (s *CategorySet) Labels() []string {
	labels := make([]string, len(s.Categories))
	for i, c := range s.Categories {
		labels[i] = c.Name
	}
	return labels
}

// AllLabels returns the configured labels followed by the overflow label when it
// is not already one of them.
func (s *CategorySet) AllLabels() []string {
	labels := s.Labels()
	if !s.isConfigured(s.Overflow) {
		labels = append(labels, s.Overflow)
	}
	return labels
}

// Contains reports whether label is a configured label or the overflow label.
func (s *CategorySet) Contains(label string) bool {
	return label == s.Overflow || s.isConfigured(label)
}

// Match trims raw and returns the configured label it equals exactly.
// The overflow label only matches when it is configured.
func (s *CategorySet) Match(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if s.isConfigured(trimmed) {
		return trimmed, true
	}
	return "", false
}

// IsBudgetRule reports whether the set carries the three 50/30/20 labels.
func (s *CategorySet) IsBudgetRule() bool {
	return s.isConfigured(CategoryNeeds) && s.isConfigured(CategoryWants) && s.isConfigured(CategorySavings)
}

func (s *CategorySet) isConfigured(label string) bool {
	for _, c := range s.Categories {
		if c.Name == label {
			return true
		}
	}
	return false
}

// BudgetCategorySet is the three-way 50/30/20 profile.
func BudgetCategorySet() *CategorySet {
	return &CategorySet{
		Name:     ProfileBudget,
		Overflow: CategoryOthers,
		Categories: []CategoryConfig{
			{Name: CategoryNeeds, Description: "Essential expenses required for basic living (e.g., rent, utilities, groceries, transportation for work)."},
			{Name: CategoryWants, Description: "Non-essential expenses for enjoyment (e.g., dining out, entertainment, vacations, hobbies)."},
			{Name: CategorySavings, Description: "Money set aside for savings, investments, or paying off debts."},
		},
	}
}

// SpendingCategorySet is the seven-way spending-type profile.
func SpendingCategorySet() *CategorySet {
	return &CategorySet{
		Name:     ProfileSpending,
		Overflow: CategoryOthers,
		Categories: []CategoryConfig{
			{Name: CategoryGrocery, Description: "Supermarket and food shopping for home."},
			{Name: CategoryEducation, Description: "Tuition, courses, books and school supplies."},
			{Name: CategoryCarExpenses, Description: "Fuel, maintenance, insurance, parking and tolls for a car."},
			{Name: CategoryUtilities, Description: "Electricity, water, gas, internet and phone bills."},
			{Name: CategoryEntertainment, Description: "Movies, concerts, games, streaming and hobbies."},
			{Name: CategoryDining, Description: "Restaurants, cafes, takeaway and food delivery."},
			{Name: CategoryOthers, Description: "Anything that does not fit the categories above."},
		},
	}
}

// BuiltinCategorySet returns the named built-in profile.
func BuiltinCategorySet(profile string) (*CategorySet, error) {
	switch strings.ToLower(strings.TrimSpace(profile)) {
	case ProfileBudget, "":
		return BudgetCategorySet(), nil
	case ProfileSpending:
		return SpendingCategorySet(), nil
	default:
		return nil, fmt.Errorf("unknown category profile %q (expected %q or %q)", profile, ProfileBudget, ProfileSpending)
	}
}

// LoadCategorySet reads a category profile from a YAML file.
func LoadCategorySet(path string) (*CategorySet, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("error reading categories file: %w", err)
	}

	var cfg CategoriesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing categories file %s: %w", path, err)
	}
	if cfg.Name == "" {
		cfg.Name = path
	}

	return NewCategorySet(cfg.Name, cfg.Overflow, cfg.Categories)
}
