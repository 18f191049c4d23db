package summarizer

import (
	"errors"
	"regexp"
	"strings"
)

const (
	fabricationDirective = "Important: Only include information explicitly stated in the text. " +
		"Do not add facts, interpretations, or details not present in the original.\n" +
		"If anything is unclear, omit it rather than fabricating information."

	sourceHeader = "Text to summarize:\n\n"

	maxLanguageLen = 40
)

var (
	languageRe = regexp.MustCompile(`^\p{L}[\p{L} \-]*$`)

	errInvalidLanguage = errors.New("target language must contain only letters, spaces or hyphens")
)

var lengthDirectives = map[Length]string{
	LengthShort:  "Provide a BRIEF summary (2-3 sentences).",
	LengthMedium: "Provide a MODERATE-LENGTH summary (one paragraph).",
	LengthLong:   "Provide a DETAILED summary with multiple paragraphs.",
}

var formatDirectives = map[Format]string{
	FormatParagraph: "Write the summary in clear, flowing paragraph form.",
	FormatBullets: "Format your response as bullet points (use • or -). " +
		"Each bullet should capture a key point from the text.",
	FormatTakeaways: "Provide KEY TAKEAWAYS numbered 1, 2, 3, etc. " +
		"Focus on the most important insights and actionable points.",
}

var styleDirectives = map[Style]string{
	StyleStandard: "Use a clear, neutral and objective tone.",
	StyleFormal:   "Use a formal, professional tone suitable for business or academic readers.",
	StyleCreative: "Use an engaging, creative tone with vivid wording while staying faithful to the text.",
}

// NormalizeLanguage returns the upper-cased language, or "" when the caller wants
// the summary in the source language ("" or "auto").
func NormalizeLanguage(raw string) (string, error) {
	lang := strings.Join(strings.Fields(raw), " ")
	if lang == "" || strings.EqualFold(lang, "auto") {
		return "", nil
	}
	if len([]rune(lang)) > maxLanguageLen || !languageRe.MatchString(lang) {
		return "", errInvalidLanguage
	}
	return strings.ToUpper(lang), nil
}

// BuildPrompt renders the instruction for one summary. It is a pure function of its
// inputs; opts.Language must already be normalized.
func BuildPrompt(text string, opts Options) string {
	var b strings.Builder
	b.WriteString(lengthDirective(opts.Length))
	b.WriteString(" ")
	b.WriteString(formatDirective(opts.Format))
	b.WriteString(" ")
	b.WriteString(styleDirective(opts.Style))
	b.WriteString("\n\n")
	b.WriteString(fabricationDirective)
	b.WriteString("\n\n")
	if opts.Language != "" {
		b.WriteString(LanguageDirective(opts.Language, "summary"))
		b.WriteString("\n\n")
	}
	b.WriteString(sourceHeader)
	b.WriteString(text)
	return b.String()
}

// LanguageDirective instructs the model to answer in lang regardless of the source language.
func LanguageDirective(lang, artifact string) string {
	return "OUTPUT LANGUAGE: " + lang + "\n" +
		"You must generate the " + artifact + " in " + lang + ". " +
		"If the source text is written in another language, YOU MUST TRANSLATE IT into " + lang + "."
}

func lengthDirective(l Length) string {
	if d, ok := lengthDirectives[l]; ok {
		return d
	}
	return lengthDirectives[LengthMedium]
}

func formatDirective(f Format) string {
	if d, ok := formatDirectives[f]; ok {
		return d
	}
	return formatDirectives[FormatParagraph]
}

func styleDirective(s Style) string {
	if d, ok := styleDirectives[s]; ok {
		return d
	}
	return styleDirectives[StyleStandard]
}
