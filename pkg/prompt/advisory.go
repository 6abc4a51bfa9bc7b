// Package prompt assembles the advisory request sent to the text-generation
// provider. Pure text assembly: no network or file side effects.
package prompt

import (
	"fmt"
	"strings"

	"crop-advisor-be/pkg/ml"
)

// Language selects the response language the generator is instructed to use.
// The builder never translates anything itself.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageTelugu  Language = "te"
)

// AdvisoryBuilder builds the structured agricultural guidance prompt for a
// recommended crop and the measurements that produced it.
type AdvisoryBuilder struct {
	crop     string
	features ml.FeatureVector
	language Language
	followUp string
}

func NewAdvisoryBuilder(crop string, features ml.FeatureVector, language Language) *AdvisoryBuilder {
	return &AdvisoryBuilder{
		crop:     crop,
		features: features,
		language: language,
	}
}

// WithFollowUp appends the user's latest chat question to the prompt.
func (b *AdvisoryBuilder) WithFollowUp(question string) *AdvisoryBuilder {
	b.followUp = question
	return b
}

// Build produces the deterministic prompt: instruction block, labeled
// parameter dump (one decimal place throughout), optional follow-up line.
func (b *AdvisoryBuilder) Build() string {
	var prompt strings.Builder

	b.writeInstructions(&prompt)
	b.writeParameters(&prompt)
	b.writeFollowUp(&prompt)

	return prompt.String()
}

func (b *AdvisoryBuilder) writeInstructions(prompt *strings.Builder) {
	fmt.Fprintf(prompt, "Provide detailed agricultural guidance for %s cultivation, focusing on:\n", b.crop)
	prompt.WriteString("1. Optimal cultivation process\n")
	prompt.WriteString("2. Recommended fertilizers\n")
	prompt.WriteString("3. Pest prevention strategies\n")
	prompt.WriteString("4. Best cultivation seasons\n")
	prompt.WriteString("5. Key growth requirements\n")

	if b.language == LanguageTelugu {
		prompt.WriteString("\nPlease provide the response in Telugu language.\n")
	}
}

func (b *AdvisoryBuilder) writeParameters(prompt *strings.Builder) {
	prompt.WriteString("\nDetailed Soil and Environmental Parameters:\n")
	units := [ml.FeatureCount]string{"", "", "", "°C", "%", "", " mm"}
	for i, name := range ml.FeatureNames {
		fmt.Fprintf(prompt, "- %s: %.1f%s\n", name, b.features[i], units[i])
	}
	prompt.WriteString("\nProvide comprehensive agricultural insights taking these specific parameters into account.")
}

func (b *AdvisoryBuilder) writeFollowUp(prompt *strings.Builder) {
	if b.followUp == "" {
		return
	}
	prompt.WriteString("\n\nLatest User Query: ")
	prompt.WriteString(b.followUp)
}
