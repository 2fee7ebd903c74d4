package llm

import (
	"fmt"
	"sort"
)

// HarmCategory is a content-safety category understood by the provider.
type HarmCategory string

const (
	HarmCategoryHarassment       HarmCategory = "HARM_CATEGORY_HARASSMENT"
	HarmCategoryHateSpeech       HarmCategory = "HARM_CATEGORY_HATE_SPEECH"
	HarmCategorySexuallyExplicit HarmCategory = "HARM_CATEGORY_SEXUALLY_EXPLICIT"
	HarmCategoryDangerousContent HarmCategory = "HARM_CATEGORY_DANGEROUS_CONTENT"
	HarmCategoryCivicIntegrity   HarmCategory = "HARM_CATEGORY_CIVIC_INTEGRITY"
)

// Threshold is the severity at which content in a category is blocked.
type Threshold string

const (
	ThresholdBlockLowAndAbove    Threshold = "BLOCK_LOW_AND_ABOVE"
	ThresholdBlockMediumAndAbove Threshold = "BLOCK_MEDIUM_AND_ABOVE"
	ThresholdBlockOnlyHigh       Threshold = "BLOCK_ONLY_HIGH"
	ThresholdBlockNone           Threshold = "BLOCK_NONE"
	ThresholdOff                 Threshold = "OFF"
)

var (
	harmCategories = map[HarmCategory]bool{
		HarmCategoryHarassment:       true,
		HarmCategoryHateSpeech:       true,
		HarmCategorySexuallyExplicit: true,
		HarmCategoryDangerousContent: true,
		HarmCategoryCivicIntegrity:   true,
	}
	thresholds = map[Threshold]bool{
		ThresholdBlockLowAndAbove:    true,
		ThresholdBlockMediumAndAbove: true,
		ThresholdBlockOnlyHigh:       true,
		ThresholdBlockNone:           true,
		ThresholdOff:                 true,
	}
)

// SafetySettings maps categories to block thresholds.
type SafetySettings map[HarmCategory]Threshold

// SafetySetting is one category/threshold pair.
type SafetySetting struct {
	Category  HarmCategory
	Threshold Threshold
}

// ParseSafetySettings validates a loosely-typed mapping such as one read
// from a config file.
func ParseSafetySettings(raw map[string]string) (SafetySettings, error) {
	out := make(SafetySettings, len(raw))
	for c, t := range raw {
		if !harmCategories[HarmCategory(c)] {
			return nil, fmt.Errorf("unknown harm category %q", c)
		}
		if !thresholds[Threshold(t)] {
			return nil, fmt.Errorf("unknown threshold %q for %s", t, c)
		}
		out[HarmCategory(c)] = Threshold(t)
	}
	return out, nil
}

// Sorted returns the settings ordered by category so requests are stable.
func (s SafetySettings) Sorted() []SafetySetting {
	out := make([]SafetySetting, 0, len(s))
	for c, t := range s {
		out = append(out, SafetySetting{Category: c, Threshold: t})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Category < out[j].Category
	})
	return out
}
