package model

import (
	"time"

	"github.com/google/uuid"
)

// Job bundles the parts, candidate sheets, and options of one nesting run.
type Job struct {
	Name    string          `json:"name"`
	Parts   []PartShape     `json:"parts"`
	Sheets  []MaterialSheet `json:"sheets"`
	Options NestOptions     `json:"options"`
	Result  *NestingResult  `json:"result,omitempty"`
}

// JobTemplate represents a reusable job configuration that captures parts,
// sheets, and options but not nesting results.
type JobTemplate struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
	Parts       []PartShape     `json:"parts"`
	Sheets      []MaterialSheet `json:"sheets"`
	Options     NestOptions     `json:"options"`
}

// NewJobTemplate creates a new template from the given job data. It copies
// parts, sheets, and options but intentionally excludes results.
func NewJobTemplate(name, description string, parts []PartShape, sheets []MaterialSheet, options NestOptions) JobTemplate {
	now := time.Now().UTC().Format(time.RFC3339)
	return JobTemplate{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Parts:       copyParts(parts),
		Sheets:      copySheets(sheets),
		Options:     options,
	}
}

// ToJob creates a new Job from this template. Parts and sheets get fresh IDs
// so they are independent of the template.
func (t JobTemplate) ToJob(jobName string) Job {
	parts := make([]PartShape, len(t.Parts))
	for i, p := range t.Parts {
		parts[i] = NewPartShape(p.Name, p.Width, p.Height, p.Quantity)
		parts[i].Outline = p.Outline
		parts[i].Rotation = p.Rotation
		parts[i].Priority = p.Priority
		parts[i].Material = p.Material
		parts[i].Thickness = p.Thickness
	}

	sheets := make([]MaterialSheet, len(t.Sheets))
	for i, s := range t.Sheets {
		sheets[i] = NewMaterialSheet(s.Name, s.Width, s.Height)
		sheets[i].Thickness = s.Thickness
		sheets[i].Material = s.Material
		sheets[i].CostPerSheet = s.CostPerSheet
		sheets[i].UsableArea = s.UsableArea
		sheets[i].EdgeMargin = s.EdgeMargin
	}

	return Job{
		Name:    jobName,
		Parts:   parts,
		Sheets:  sheets,
		Options: t.Options,
	}
}

// TemplateStore holds a collection of job templates.
type TemplateStore struct {
	Templates []JobTemplate `json:"templates"`
}

// NewTemplateStore creates an empty template store.
func NewTemplateStore() TemplateStore {
	return TemplateStore{
		Templates: []JobTemplate{},
	}
}

// Add adds a template to the store.
func (ts *TemplateStore) Add(t JobTemplate) {
	ts.Templates = append(ts.Templates, t)
}

// Remove removes a template by ID. Returns true if found and removed.
func (ts *TemplateStore) Remove(id string) bool {
	for i, t := range ts.Templates {
		if t.ID == id {
			ts.Templates = append(ts.Templates[:i], ts.Templates[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the template with the given ID, or nil.
func (ts *TemplateStore) FindByID(id string) *JobTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].ID == id {
			return &ts.Templates[i]
		}
	}
	return nil
}

// Names returns the list of template names.
func (ts *TemplateStore) Names() []string {
	names := make([]string, len(ts.Templates))
	for i, t := range ts.Templates {
		names[i] = t.Name
	}
	return names
}

// FindByName returns a pointer to the first template with the given name, or nil.
func (ts *TemplateStore) FindByName(name string) *JobTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].Name == name {
			return &ts.Templates[i]
		}
	}
	return nil
}

// copyParts creates a copy of a parts slice.
func copyParts(parts []PartShape) []PartShape {
	if parts == nil {
		return []PartShape{}
	}
	cp := make([]PartShape, len(parts))
	copy(cp, parts)
	return cp
}

// copySheets creates a copy of a sheets slice.
func copySheets(sheets []MaterialSheet) []MaterialSheet {
	if sheets == nil {
		return []MaterialSheet{}
	}
	cp := make([]MaterialSheet, len(sheets))
	copy(cp, sheets)
	return cp
}
