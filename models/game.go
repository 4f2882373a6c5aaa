// models/game.go
package models

import (
	"errors"
	"fmt"
	"strings"
	"text/template"
	"time"
)

const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// ValidationKind picks the local heuristic run before grading.
type ValidationKind string

const (
	ValidationBoolean  ValidationKind = "boolean"
	ValidationOutreach ValidationKind = "outreach"
	ValidationGeneral  ValidationKind = "general"
)

type ValidationSpec struct {
	Kind             ValidationKind `yaml:"kind" json:"kind"`
	RequiredKeywords []string       `yaml:"required_keywords,omitempty" json:"required_keywords,omitempty"`
	MaxWords         int            `yaml:"max_words,omitempty" json:"max_words,omitempty"`
}

// Game is a static challenge definition. Display fields may be overridden at read
// time; the grading context captured by Compile never changes.
type Game struct {
	ID                string         `yaml:"id" json:"id"`
	Title             string         `yaml:"title" json:"title"`
	Description       string         `yaml:"description" json:"description"`
	Task              string         `yaml:"task" json:"task"`
	SkillCategory     string         `yaml:"skill" json:"skill"`
	Difficulty        string         `yaml:"difficulty" json:"difficulty"`
	Validation        ValidationSpec `yaml:"validation" json:"validation"`
	ReferenceSolution string         `yaml:"reference_solution" json:"-"`
	PromptTemplate    string         `yaml:"prompt_template" json:"-"`
	Active            bool           `yaml:"active" json:"active"`
	Featured          bool           `yaml:"featured" json:"featured"`

	grading *gradingContext
}

// gradingContext is the authoritative base snapshot a prompt is rendered from.
type gradingContext struct {
	tmpl *template.Template
	base promptGame
}

type promptGame struct {
	ID                string
	Title             string
	Description       string
	Task              string
	Skill             string
	Difficulty        string
	ReferenceSolution string
	RequiredKeywords  []string
	MaxWords          int
}

var ErrGameNotCompiled = errors.New("game prompt template not compiled")

// Compile parses the prompt template and freezes the grading context.
func (g *Game) Compile() error {
	if strings.TrimSpace(g.PromptTemplate) == "" {
		return fmt.Errorf("game %s: prompt_template is empty", g.ID)
	}
	tmpl, err := template.New(g.ID).Option("missingkey=error").Parse(g.PromptTemplate)
	if err != nil {
		return fmt.Errorf("game %s: parse prompt template: %w", g.ID, err)
	}
	g.grading = &gradingContext{
		tmpl: tmpl,
		base: promptGame{
			ID:                g.ID,
			Title:             g.Title,
			Description:       g.Description,
			Task:              g.Task,
			Skill:             g.SkillCategory,
			Difficulty:        g.Difficulty,
			ReferenceSolution: g.ReferenceSolution,
			RequiredKeywords:  append([]string(nil), g.Validation.RequiredKeywords...),
			MaxWords:          g.Validation.MaxWords,
		},
	}
	return nil
}

// Prompt renders the grading prompt for submission. The submission is passed as a
// template value, so its text is never parsed as template syntax.
func (g *Game) Prompt(submission string) (string, error) {
	if g.grading == nil {
		return "", ErrGameNotCompiled
	}
	var b strings.Builder
	err := g.grading.tmpl.Execute(&b, struct {
		Game       promptGame
		Submission string
	}{Game: g.grading.base, Submission: submission})
	if err != nil {
		return "", fmt.Errorf("game %s: render prompt: %w", g.ID, err)
	}
	return b.String(), nil
}

// WithOverride returns a copy with the override's display fields applied.
func (g Game) WithOverride(o *GameOverride) Game {
	if o == nil {
		return g
	}
	if o.Title != nil {
		g.Title = *o.Title
	}
	if o.Description != nil {
		g.Description = *o.Description
	}
	if o.Task != nil {
		g.Task = *o.Task
	}
	if o.Active != nil {
		g.Active = *o.Active
	}
	if o.Featured != nil {
		g.Featured = *o.Featured
	}
	return g
}

// GameOverride holds admin-edited display fields for a catalog game.
type GameOverride struct {
	GameID      string    `gorm:"primaryKey" json:"game_id"`
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Task        *string   `gorm:"type:text" json:"task,omitempty"`
	Active      *bool     `json:"active,omitempty"`
	Featured    *bool     `json:"featured,omitempty"`
	UpdatedBy   string    `json:"updated_by,omitempty"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
