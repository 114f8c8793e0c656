package ai

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"careerforge/internal/types"
)

// FallbackAnalysis returns the fixed analysis served when the AI analysis
// operation fails. Callers can always render it; the suggestion tells the
// user to retry.
func FallbackAnalysis() types.ResumeAnalysis {
	return types.ResumeAnalysis{
		Score:           65,
		KeywordMatch:    60,
		MissingKeywords: []string{"Error analyzing keywords"},
		Suggestions:     []string{"There was an error analyzing your resume. Please try again."},
		Strengths:       []string{"Resume appears to be well-formatted"},
	}
}

var (
	placeholderRe    = regexp.MustCompile(`(?i)\[(Your|Hiring|Position|Company|Date|Address|Name)[^\]]*\]`)
	yourNameRe       = regexp.MustCompile(`(?i)\[Your Name\]`)
	yourEmailRe      = regexp.MustCompile(`(?i)\[Your E-?mail[^\]]*\]`)
	yourPhoneRe      = regexp.MustCompile(`(?i)\[Your Phone[^\]]*\]`)
	yourDateRe       = regexp.MustCompile(`(?i)\[(Your )?Date\]`)
	hiringManagerRe  = regexp.MustCompile(`(?i)\[Hiring Manager( Name)?\]`)
	positionRe       = regexp.MustCompile(`(?i)\[Position\]`)
	companyNameRe    = regexp.MustCompile(`(?i)\[Company( Name)?\]`)
	addressRe        = regexp.MustCompile(`(?i)[ \t]*\[(Your )?Address\][ \t]*`)
	excessNewlinesRe = regexp.MustCompile(`\n{3,}`)
	doubleSpaceRe    = regexp.MustCompile(` {2,}`)
)

// HasPlaceholders reports whether a generated letter still contains
// bracketed template tokens.
func HasPlaceholders(letter string) bool {
	return placeholderRe.MatchString(letter)
}

// ReplacePlaceholders deterministically substitutes any bracketed template
// tokens the model left behind, using resume data where available and
// generic defaults otherwise. Address placeholders are removed entirely,
// tokens with no known substitution are stripped, and the resulting blank
// runs are collapsed. No placeholder survives the pass.
func ReplacePlaceholders(letter string, resumeData *types.ResumeData, companyName, date string) string {
	name := "Applicant"
	email := ""
	phone := ""
	if resumeData != nil {
		if resumeData.PersonalDetails.Name != "" {
			name = resumeData.PersonalDetails.Name
		}
		email = resumeData.PersonalDetails.Email
		phone = resumeData.PersonalDetails.Phone
	}
	if date == "" {
		date = time.Now().Format("January 2, 2006")
	}
	company := companyName
	if company == "" {
		company = "the company"
	}

	letter = yourNameRe.ReplaceAllString(letter, name)
	letter = yourEmailRe.ReplaceAllString(letter, email)
	letter = yourPhoneRe.ReplaceAllString(letter, phone)
	letter = yourDateRe.ReplaceAllString(letter, date)
	letter = hiringManagerRe.ReplaceAllString(letter, "Hiring Manager")
	letter = positionRe.ReplaceAllString(letter, "the position")
	letter = companyNameRe.ReplaceAllString(letter, company)
	letter = addressRe.ReplaceAllString(letter, "")

	// Models invent token variants beyond the ones enumerated above
	// ([Your LinkedIn], [Your Portfolio URL], ...). Whatever is left is
	// dropped so no bracketed template text reaches the user.
	letter = placeholderRe.ReplaceAllString(letter, "")
	letter = doubleSpaceRe.ReplaceAllString(letter, " ")
	letter = excessNewlinesRe.ReplaceAllString(letter, "\n\n")

	return letter
}

// FallbackLetter builds a minimal but complete letter from the available
// details when generation fails outright.
func FallbackLetter(input types.CoverLetterInput) string {
	date := input.Date
	if date == "" {
		date = time.Now().Format("January 2, 2006")
	}
	company := input.CompanyName
	if company == "" {
		company = "your company"
	}

	name := "Applicant"
	email := ""
	phone := ""
	if input.ResumeData != nil {
		if input.ResumeData.PersonalDetails.Name != "" {
			name = input.ResumeData.PersonalDetails.Name
		}
		email = input.ResumeData.PersonalDetails.Email
		phone = input.ResumeData.PersonalDetails.Phone
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\nHiring Manager\n%s\n\nDear Hiring Manager,\n\n", date, company)
	fmt.Fprintf(&b, "I am writing to express my interest in the position at %s. ", company)
	b.WriteString("Due to a technical error, the full cover letter could not be generated. ")
	b.WriteString("Please consider my attached resume for your review.\n\nSincerely,\n\n")
	b.WriteString(name)
	for _, line := range []string{email, phone} {
		if line != "" {
			b.WriteString("\n" + line)
		}
	}
	b.WriteString("\n")
	return b.String()
}
