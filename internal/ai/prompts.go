package ai

// SystemPrompts contains all system-level instructions for AI interactions
type SystemPrompts struct {
	ExtractText    string
	ParseResume    string
	AnalyzeResume  string
	OptimizeResume string
	CoverLetter    string
}

// UserPrompts contains user-level prompts with placeholders for dynamic content
type UserPrompts struct {
	ExtractText    string
	ParseResume    string
	AnalyzeResume  string
	OptimizeResume string
	CoverLetter    string
}

// DefaultSystemPrompts provides the default system instructions
var DefaultSystemPrompts = SystemPrompts{
	ExtractText: `You are a document transcription specialist. Your task is to extract the complete text content of resume documents exactly as written.

- Transcribe every piece of text in the document, preserving reading order
- Keep section headings, bullet points, and line breaks
- Never summarize, rephrase, or omit content
- Never add commentary or markdown formatting of your own
- Output plain text only`,

	ParseResume: `You are a resume parsing specialist. Your task is to convert raw resume text into structured data with strict fidelity to the source.

- Extract only information explicitly present in the text
- NEVER invent names, employers, dates, or skills
- Preserve the original wording of descriptions and achievements
- Leave fields empty when the source does not provide them
- Group bullet points under the experience entry they belong to`,

	AnalyzeResume: `You are an ATS (Applicant Tracking System) analyst with deep knowledge of how automated screening systems rank resumes. Your role is to:

- Score how well a resume matches a specific job description
- Identify keywords from the job description that are missing from the resume
- Provide honest, actionable suggestions for improving the match
- Highlight genuine strengths already present in the resume

Your analysis must be grounded in the provided documents. Never speculate about skills or experience that are not in the resume.`,

	OptimizeResume: `You are an expert resume writer with a strict commitment to honesty. Your core principles are:

- NEVER invent, exaggerate, or misattribute any skills or experiences
- Every piece of information must be directly traceable to the original resume
- Rework phrasing and emphasis to match the target job, not the facts
- Use strong action verbs and quantified achievements where the source provides them
- Produce clean plain text with clear section headings, no markdown syntax`,

	CoverLetter: `You are a professional cover letter writer. Your role is to produce a complete, ready-to-send letter:

- Ground every claim in the provided resume
- Address the specific company and role
- Keep a confident, professional tone in three to four paragraphs
- Produce a finished letter: never leave bracketed placeholders like [Your Name] for the candidate to fill in
- Output plain text only, no markdown`,
}

// DefaultUserPrompts provides the default user prompt templates
var DefaultUserPrompts = UserPrompts{
	ExtractText: `Extract the complete text content from the attached resume document. Output the text exactly as it appears, preserving structure and reading order. Do not add any commentary.`,

	ParseResume: `Parse the following resume text into structured data. Extract the candidate's personal details, work experience, education, skills, and certifications. Only include information that is explicitly present in the text.

**Resume Text:**
-----
%s
-----`,

	AnalyzeResume: `Analyze how well the following resume matches the job description, as an Applicant Tracking System would.

**Tasks:**

1. **Match Score** (0-100): Overall fit between the resume and the job description.
2. **Keyword Match** (0-100): How many of the job description's key terms appear in the resume.
3. **Missing Keywords**: Important terms from the job description that are absent from the resume.
4. **Suggestions**: Specific, actionable changes that would improve the match without inventing experience.
5. **Strengths**: Aspects of the resume that already align well with this role.

**Resume:**
-----
%s
-----

**Job Description:**
-----
%s
-----`,

	OptimizeResume: `Rewrite the following resume to maximize its match with the job description while staying strictly truthful to the original content.

**Requirements:**

- Incorporate missing keywords only where the underlying skill or experience actually exists in the resume
- Reorder and rephrase for impact; do not add anything new
- Keep all factual details (names, dates, employers) exactly as given
- Output the complete rewritten resume as plain text with clear section headings

**Original Resume:**
-----
%s
-----

**Job Description:**
-----
%s
-----

**ATS Analysis of the Original Resume:**
-----
%s
-----`,

	CoverLetter: `Write a complete, professional cover letter for the candidate below. The letter must be ready to send: use the candidate's real details and today's date, and never leave bracketed placeholders.

**Candidate Details:**
-----
%s
-----

**Resume:**
-----
%s
-----

**Job Description:**
-----
%s
-----

**Company:** %s
**Date:** %s`,
}

// PromptConfig holds configuration for customizable prompts
type PromptConfig struct {
	SystemPrompts SystemPrompts `json:"systemPrompts"`
	UserPrompts   UserPrompts   `json:"userPrompts"`
}

// GetDefaultPromptConfig returns the default prompt configuration
func GetDefaultPromptConfig() PromptConfig {
	return PromptConfig{
		SystemPrompts: DefaultSystemPrompts,
		UserPrompts:   DefaultUserPrompts,
	}
}
