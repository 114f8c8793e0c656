// Package resume provides heuristic extraction from raw resume text and
// plain-text rendering of structured resume data.
package resume

import (
	"regexp"
	"strings"

	"careerforge/internal/types"
)

var (
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phoneRe = regexp.MustCompile(`\d{3}[-.\s]?\d{3}[-.\s]?\d{4}`)
)

// ExtractName returns the first non-blank line of the text, which is where
// resumes almost always carry the candidate name.
func ExtractName(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// ExtractEmail returns the first email address found in the text.
func ExtractEmail(text string) string {
	return emailRe.FindString(text)
}

// ExtractPhone returns the first phone-shaped number found in the text.
func ExtractPhone(text string) string {
	return phoneRe.FindString(text)
}

// FallbackData builds a minimal ResumeData from raw text when structured
// parsing is unavailable. All list fields are empty but never nil.
func FallbackData(text string) types.ResumeData {
	return types.ResumeData{
		PersonalDetails: types.PersonalDetails{
			Name:  ExtractName(text),
			Email: ExtractEmail(text),
			Phone: ExtractPhone(text),
		},
		Experience:     []types.Experience{},
		Education:      []types.Education{},
		Skills:         []string{},
		Certifications: []string{},
		RawText:        text,
	}
}

// Document renders structured resume data as a plain-text resume. The name
// goes on the first line, contact details follow one per line, and section
// headers are only emitted when the section has content.
func Document(d types.ResumeData) string {
	var b strings.Builder

	p := d.PersonalDetails
	if p.Name != "" {
		b.WriteString(p.Name)
		b.WriteString("\n")
	}
	for _, line := range contactLines(p) {
		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(d.Experience) > 0 {
		b.WriteString("\nEXPERIENCE\n")
		for _, exp := range d.Experience {
			b.WriteString("\n")
			b.WriteString(exp.Position)
			if exp.Company != "" {
				b.WriteString(" | ")
				b.WriteString(exp.Company)
			}
			if exp.Duration != "" {
				b.WriteString(" | ")
				b.WriteString(exp.Duration)
			}
			b.WriteString("\n")
			for _, item := range exp.Description {
				b.WriteString("- ")
				b.WriteString(item)
				b.WriteString("\n")
			}
		}
	}

	if len(d.Education) > 0 {
		b.WriteString("\nEDUCATION\n")
		for _, edu := range d.Education {
			b.WriteString("\n")
			b.WriteString(edu.Degree)
			if edu.Institution != "" {
				b.WriteString(" | ")
				b.WriteString(edu.Institution)
			}
			if edu.Duration != "" {
				b.WriteString(" | ")
				b.WriteString(edu.Duration)
			}
			b.WriteString("\n")
		}
	}

	if len(d.Skills) > 0 {
		b.WriteString("\nSKILLS\n")
		b.WriteString(strings.Join(d.Skills, ", "))
		b.WriteString("\n")
	}

	if len(d.Certifications) > 0 {
		b.WriteString("\nCERTIFICATIONS\n")
		for _, cert := range d.Certifications {
			b.WriteString("- ")
			b.WriteString(cert)
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// contactLines builds the contact block, skipping absent fields
func contactLines(p types.PersonalDetails) []string {
	var lines []string
	var contact []string
	for _, v := range []string{p.Email, p.Phone, p.Location} {
		if v != "" {
			contact = append(contact, v)
		}
	}
	if len(contact) > 0 {
		lines = append(lines, strings.Join(contact, " | "))
	}
	for _, link := range []string{p.LinkedIn, p.Portfolio, p.GitHub} {
		if link != "" {
			lines = append(lines, link)
		}
	}
	return lines
}

// PromptBlocks renders structured resume data as labeled text blocks suitable
// for embedding in a generation prompt.
func PromptBlocks(d types.ResumeData) string {
	var b strings.Builder

	p := d.PersonalDetails
	b.WriteString("Candidate: ")
	b.WriteString(p.Name)
	b.WriteString("\n")
	if p.Email != "" {
		b.WriteString("Email: " + p.Email + "\n")
	}
	if p.Phone != "" {
		b.WriteString("Phone: " + p.Phone + "\n")
	}
	if p.Location != "" {
		b.WriteString("Location: " + p.Location + "\n")
	}

	if len(d.Experience) > 0 {
		b.WriteString("\nWork history:\n")
		for _, exp := range d.Experience {
			b.WriteString("- " + exp.Position + " at " + exp.Company)
			if exp.Duration != "" {
				b.WriteString(" (" + exp.Duration + ")")
			}
			b.WriteString("\n")
			for _, item := range exp.Description {
				b.WriteString("  - " + item + "\n")
			}
		}
	}

	if len(d.Education) > 0 {
		b.WriteString("\nEducation:\n")
		for _, edu := range d.Education {
			b.WriteString("- " + edu.Degree + ", " + edu.Institution)
			if edu.Duration != "" {
				b.WriteString(" (" + edu.Duration + ")")
			}
			b.WriteString("\n")
		}
	}

	if len(d.Skills) > 0 {
		b.WriteString("\nSkills: " + strings.Join(d.Skills, ", ") + "\n")
	}
	if len(d.Certifications) > 0 {
		b.WriteString("Certifications: " + strings.Join(d.Certifications, ", ") + "\n")
	}

	return b.String()
}
