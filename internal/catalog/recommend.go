package catalog

import "fmt"

// RecommendMaterials returns the preferred material keys for a design
// intent, best first. Unknown intents return an empty list.
func (c *Catalog) RecommendMaterials(intent DesignIntent) []string {
	t := c.tables.Load()
	keys := t.Recommended[intent]
	out := make([]string, len(keys))
	copy(out, keys)
	return out
}

// MaterialRequirements captures what a design needs from its material.
// Zero values mean "no requirement".
type MaterialRequirements struct {
	MaxSpan           float64 `json:"max_span"`    // Longest unsupported span in the design (mm)
	MinFeature        float64 `json:"min_feature"` // Smallest feature the design contains (mm)
	NeedsTransparency bool    `json:"needs_transparency"`
	NeedsFlexibility  bool    `json:"needs_flexibility"`
}

// MaterialChoice is the result of checking a material against requirements.
type MaterialChoice struct {
	IsValid      bool     `json:"is_valid"`
	Issues       []string `json:"issues,omitempty"`
	Alternatives []string `json:"alternatives,omitempty"`
}

// ValidateMaterialChoice checks whether a material can satisfy the given
// requirements. Deterministic and side-effect free; failing requirements are
// data in Issues, with Alternatives listing materials that would satisfy
// them all.
func (c *Catalog) ValidateMaterialChoice(materialKey string, reqs MaterialRequirements) (MaterialChoice, error) {
	t := c.tables.Load()
	mat, ok := t.Materials[materialKey]
	if !ok {
		return MaterialChoice{}, fmt.Errorf("%w: %q", ErrUnknownMaterial, materialKey)
	}

	choice := MaterialChoice{IsValid: true}
	for _, issue := range materialIssues(t, materialKey, mat, reqs) {
		choice.IsValid = false
		choice.Issues = append(choice.Issues, issue)
	}

	if !choice.IsValid {
		for _, key := range sortedKeys(t.Materials) {
			if key == materialKey {
				continue
			}
			if len(materialIssues(t, key, t.Materials[key], reqs)) == 0 {
				choice.Alternatives = append(choice.Alternatives, key)
			}
		}
	}
	return choice, nil
}

// materialIssues returns the requirement failures for one material.
func materialIssues(t *Tables, key string, mat MaterialProperties, reqs MaterialRequirements) []string {
	var issues []string

	if reqs.MaxSpan > 0 {
		limits, ok := t.Structural[key]
		if !ok {
			issues = append(issues, fmt.Sprintf("no structural limits known for %q", key))
		} else if reqs.MaxSpan > limits.MaxSpanWithoutSupport {
			issues = append(issues, fmt.Sprintf(
				"span %.0fmm exceeds the %.0fmm unsupported limit", reqs.MaxSpan, limits.MaxSpanWithoutSupport))
		}
	}
	if reqs.MinFeature > 0 && reqs.MinFeature < mat.MinFeatureSize {
		issues = append(issues, fmt.Sprintf(
			"smallest feature %.2fmm is below the %.2fmm minimum", reqs.MinFeature, mat.MinFeatureSize))
	}
	if reqs.NeedsTransparency && !transparentTypes[mat.Type] {
		issues = append(issues, fmt.Sprintf("%s is not transparent", mat.Type))
	}
	if reqs.NeedsFlexibility && !flexibleTypes[mat.Type] {
		issues = append(issues, fmt.Sprintf("%s is not flexible", mat.Type))
	}
	return issues
}

// MachineSettings returns the cut/score/engrave settings for a material.
// Unknown keys are an explicit error, matching ResolveConstraints; callers
// that want a fallback use DefaultMachineSettingsKey themselves.
func (c *Catalog) MachineSettings(materialKey string) (MachineSettings, error) {
	t := c.tables.Load()
	s, ok := t.Settings[materialKey]
	if !ok {
		return MachineSettings{}, fmt.Errorf("%w: no machine settings for %q", ErrUnknownMaterial, materialKey)
	}
	return s, nil
}
