package types

// PersonalDetails holds the contact block of a parsed resume
type PersonalDetails struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
	LinkedIn  string `json:"linkedIn,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
	GitHub    string `json:"github,omitempty"`
}

// Experience represents a single position in the work history
type Experience struct {
	Company     string   `json:"company"`
	Position    string   `json:"position"`
	Duration    string   `json:"duration"`
	Description []string `json:"description"`
}

// Education represents a single education entry
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Duration    string `json:"duration"`
}

// ResumeData is the structured form of a resume. List fields are always
// non-nil once the data has passed through the gateway.
type ResumeData struct {
	PersonalDetails PersonalDetails `json:"personalDetails"`
	Experience      []Experience    `json:"experience"`
	Education       []Education     `json:"education"`
	Skills          []string        `json:"skills"`
	Certifications  []string        `json:"certifications"`
	RawText         string          `json:"rawText"`
}

// EnsureLists replaces nil list fields with empty slices
func (d *ResumeData) EnsureLists() {
	if d.Experience == nil {
		d.Experience = []Experience{}
	}
	if d.Education == nil {
		d.Education = []Education{}
	}
	if d.Skills == nil {
		d.Skills = []string{}
	}
	if d.Certifications == nil {
		d.Certifications = []string{}
	}
	for i := range d.Experience {
		if d.Experience[i].Description == nil {
			d.Experience[i].Description = []string{}
		}
	}
}

// ResumeAnalysis scores a resume against a job description. Score and
// KeywordMatch are percentages in [0, 100].
type ResumeAnalysis struct {
	Score           int      `json:"score"`
	KeywordMatch    int      `json:"keywordMatch"`
	MissingKeywords []string `json:"missingKeywords"`
	Suggestions     []string `json:"suggestions"`
	Strengths       []string `json:"strengths"`
}

// OptimizedResume is the result of the optimize operation. Degraded is set
// when optimization could not run and the sanitized original was returned.
type OptimizedResume struct {
	Text     string `json:"text"`
	Degraded bool   `json:"degraded,omitempty"`
}

// JobApplication accumulates everything produced while working through a
// single application. Later-stage fields are only populated once the earlier
// fields they depend on are present.
type JobApplication struct {
	JobDescription  string          `json:"jobDescription"`
	CompanyName     string          `json:"companyName"`
	ResumeFileName  string          `json:"resumeFileName"`
	ResumeText      string          `json:"resumeText"`
	ResumeData      *ResumeData     `json:"resumeData,omitempty"`
	Analysis        *ResumeAnalysis `json:"analysis,omitempty"`
	OptimizedResume string          `json:"optimizedResume"`
	CoverLetter     string          `json:"coverLetter"`
}

// ExtractTextInput represents a document to pull plain text from
type ExtractTextInput struct {
	FileName string `json:"fileName"`
	MimeType string `json:"fileType"`
	Content  []byte `json:"fileContent"`
}

// ParseResumeInput represents the input for structuring resume text
type ParseResumeInput struct {
	ResumeText string `json:"resumeText"`
}

// AnalyzeResumeInput represents the input for scoring a resume against a job
type AnalyzeResumeInput struct {
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription"`
}

// OptimizeResumeInput represents the input for rewriting a resume
type OptimizeResumeInput struct {
	ResumeText     string         `json:"resumeText"`
	JobDescription string         `json:"jobDescription"`
	Analysis       ResumeAnalysis `json:"analysis"`
	ResumeData     *ResumeData    `json:"resumeData,omitempty"`
}

// CoverLetterInput represents the input for generating a cover letter
type CoverLetterInput struct {
	OptimizedResume string      `json:"optimizedResume"`
	JobDescription  string      `json:"jobDescription"`
	CompanyName     string      `json:"companyName"`
	Date            string      `json:"date"`
	ResumeData      *ResumeData `json:"resumeData,omitempty"`
}
