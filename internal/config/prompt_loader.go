package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// GetLoadedPrompts returns a snapshot of the loaded prompt content in a thread-safe way
func GetLoadedPrompts() AllLoadedPrompts {
	return getLoadedPrompts()
}

// promptFileBinding ties a configured prompt file path to its loaded destination
type promptFileBinding struct {
	filePath   string
	promptType string // "system" or "user"
	operation  string
	target     *string
}

// promptFileBindings enumerates every configured prompt file and where its
// content lands in the loaded prompt set.
func (c *Config) promptFileBindings(dst *AllLoadedPrompts) []promptFileBinding {
	return []promptFileBinding{
		// Global prompts
		{c.AI.CustomPrompts.SystemPrompts.ExtractTextFile, "system", "extractText", &dst.Global.SystemPrompts.ExtractText},
		{c.AI.CustomPrompts.SystemPrompts.ParseResumeFile, "system", "parseResume", &dst.Global.SystemPrompts.ParseResume},
		{c.AI.CustomPrompts.SystemPrompts.AnalyzeResumeFile, "system", "analyzeResume", &dst.Global.SystemPrompts.AnalyzeResume},
		{c.AI.CustomPrompts.SystemPrompts.OptimizeResumeFile, "system", "optimizeResume", &dst.Global.SystemPrompts.OptimizeResume},
		{c.AI.CustomPrompts.SystemPrompts.CoverLetterFile, "system", "coverLetter", &dst.Global.SystemPrompts.CoverLetter},
		{c.AI.CustomPrompts.UserPrompts.ExtractTextFile, "user", "extractText", &dst.Global.UserPrompts.ExtractText},
		{c.AI.CustomPrompts.UserPrompts.ParseResumeFile, "user", "parseResume", &dst.Global.UserPrompts.ParseResume},
		{c.AI.CustomPrompts.UserPrompts.AnalyzeResumeFile, "user", "analyzeResume", &dst.Global.UserPrompts.AnalyzeResume},
		{c.AI.CustomPrompts.UserPrompts.OptimizeResumeFile, "user", "optimizeResume", &dst.Global.UserPrompts.OptimizeResume},
		{c.AI.CustomPrompts.UserPrompts.CoverLetterFile, "user", "coverLetter", &dst.Global.UserPrompts.CoverLetter},

		// Operation-specific prompts
		{c.AI.Extract.CustomPrompts.SystemPrompts.ExtractTextFile, "extract system", "extractText", &dst.Extract.SystemPrompts.ExtractText},
		{c.AI.Extract.CustomPrompts.UserPrompts.ExtractTextFile, "extract user", "extractText", &dst.Extract.UserPrompts.ExtractText},
		{c.AI.Parse.CustomPrompts.SystemPrompts.ParseResumeFile, "parse system", "parseResume", &dst.Parse.SystemPrompts.ParseResume},
		{c.AI.Parse.CustomPrompts.UserPrompts.ParseResumeFile, "parse user", "parseResume", &dst.Parse.UserPrompts.ParseResume},
		{c.AI.Analyze.CustomPrompts.SystemPrompts.AnalyzeResumeFile, "analyze system", "analyzeResume", &dst.Analyze.SystemPrompts.AnalyzeResume},
		{c.AI.Analyze.CustomPrompts.UserPrompts.AnalyzeResumeFile, "analyze user", "analyzeResume", &dst.Analyze.UserPrompts.AnalyzeResume},
		{c.AI.Optimize.CustomPrompts.SystemPrompts.OptimizeResumeFile, "optimize system", "optimizeResume", &dst.Optimize.SystemPrompts.OptimizeResume},
		{c.AI.Optimize.CustomPrompts.UserPrompts.OptimizeResumeFile, "optimize user", "optimizeResume", &dst.Optimize.UserPrompts.OptimizeResume},
		{c.AI.CoverLetter.CustomPrompts.SystemPrompts.CoverLetterFile, "coverletter system", "coverLetter", &dst.CoverLetter.SystemPrompts.CoverLetter},
		{c.AI.CoverLetter.CustomPrompts.UserPrompts.CoverLetterFile, "coverletter user", "coverLetter", &dst.CoverLetter.UserPrompts.CoverLetter},
	}
}

// loadPromptsFromFiles loads custom prompts from external files if file paths are specified
func (c *Config) loadPromptsFromFiles() error {
	log.Println("[CONFIG] Starting custom prompt loading from files")

	var fresh AllLoadedPrompts
	for _, binding := range c.promptFileBindings(&fresh) {
		if binding.filePath == "" {
			continue
		}
		content, err := c.loadPromptFromFile(binding.filePath, binding.promptType, binding.operation)
		if err != nil {
			return fmt.Errorf("failed to load %s %s prompt: %w", binding.promptType, binding.operation, err)
		}
		*binding.target = content
	}

	setLoadedPrompts(fresh)

	// Log summary of prompt sources after loading
	c.logPromptLoadingSummary()

	return nil
}

// ReloadPrompts re-reads all configured prompt files and swaps in the result.
// Used by the prompt watcher when a file on disk changes.
func (c *Config) ReloadPrompts() error {
	if err := c.validatePromptFiles(); err != nil {
		return err
	}
	return c.loadPromptsFromFiles()
}

// PromptFilePaths returns the configured prompt file paths, for watching
func (c *Config) PromptFilePaths() []string {
	var scratch AllLoadedPrompts
	var paths []string
	seen := make(map[string]bool)
	for _, binding := range c.promptFileBindings(&scratch) {
		if binding.filePath != "" && !seen[binding.filePath] {
			seen[binding.filePath] = true
			paths = append(paths, binding.filePath)
		}
	}
	return paths
}

// loadPromptFromFile loads a prompt from a file with proper error handling and logging
func (c *Config) loadPromptFromFile(filePath, promptType, operation string) (string, error) {
	// Resolve relative paths
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path for %s %s prompt file '%s': %w", promptType, operation, filePath, err)
	}

	// Check if file exists
	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return "", fmt.Errorf("%s %s prompt file not found: %s", promptType, operation, absPath)
	}

	// Read file content
	content, err := os.ReadFile(absPath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s %s prompt file '%s': %w", promptType, operation, absPath, err)
	}

	// Validate content is not empty
	trimmedContent := strings.TrimSpace(string(content))
	if trimmedContent == "" {
		return "", fmt.Errorf("%s %s prompt file '%s' is empty", promptType, operation, absPath)
	}

	// Log successful loading
	log.Printf("[CONFIG] Successfully loaded %s %s prompt from file: %s (%d characters)",
		promptType, operation, absPath, len(trimmedContent))

	return trimmedContent, nil
}

// validatePromptFiles validates that prompt files exist and are readable before loading
func (c *Config) validatePromptFiles() error {
	var validationErrors []string

	var scratch AllLoadedPrompts
	for _, binding := range c.promptFileBindings(&scratch) {
		if binding.filePath == "" {
			continue
		}

		absPath, err := filepath.Abs(binding.filePath)
		if err != nil {
			validationErrors = append(validationErrors, fmt.Sprintf("invalid path for %s %s prompt: %s", binding.promptType, binding.operation, binding.filePath))
			continue
		}

		if _, err := os.Stat(absPath); os.IsNotExist(err) {
			validationErrors = append(validationErrors, fmt.Sprintf("%s %s prompt file not found: %s", binding.promptType, binding.operation, absPath))
		}
	}

	if len(validationErrors) > 0 {
		return fmt.Errorf("prompt file validation failed:\n%s", strings.Join(validationErrors, "\n"))
	}

	return nil
}

// logPromptLoadingSummary logs a summary of loaded prompts
func (c *Config) logPromptLoadingSummary() {
	log.Println("[CONFIG] === Custom Prompt Loading Summary ===")

	snapshot := getLoadedPrompts()
	promptCount := 0

	promptChecks := []struct {
		content string
		message string
	}{
		{snapshot.Global.SystemPrompts.ExtractText, "[CONFIG] Global system extract prompt: loaded from config/file"},
		{snapshot.Global.SystemPrompts.ParseResume, "[CONFIG] Global system parse prompt: loaded from config/file"},
		{snapshot.Global.SystemPrompts.AnalyzeResume, "[CONFIG] Global system analyze prompt: loaded from config/file"},
		{snapshot.Global.SystemPrompts.OptimizeResume, "[CONFIG] Global system optimize prompt: loaded from config/file"},
		{snapshot.Global.SystemPrompts.CoverLetter, "[CONFIG] Global system cover letter prompt: loaded from config/file"},
		{snapshot.Global.UserPrompts.ExtractText, "[CONFIG] Global user extract prompt: loaded from config/file"},
		{snapshot.Global.UserPrompts.ParseResume, "[CONFIG] Global user parse prompt: loaded from config/file"},
		{snapshot.Global.UserPrompts.AnalyzeResume, "[CONFIG] Global user analyze prompt: loaded from config/file"},
		{snapshot.Global.UserPrompts.OptimizeResume, "[CONFIG] Global user optimize prompt: loaded from config/file"},
		{snapshot.Global.UserPrompts.CoverLetter, "[CONFIG] Global user cover letter prompt: loaded from config/file"},
		{snapshot.Extract.SystemPrompts.ExtractText, "[CONFIG] Extract-specific system prompt: loaded from config/file"},
		{snapshot.Extract.UserPrompts.ExtractText, "[CONFIG] Extract-specific user prompt: loaded from config/file"},
		{snapshot.Parse.SystemPrompts.ParseResume, "[CONFIG] Parse-specific system prompt: loaded from config/file"},
		{snapshot.Parse.UserPrompts.ParseResume, "[CONFIG] Parse-specific user prompt: loaded from config/file"},
		{snapshot.Analyze.SystemPrompts.AnalyzeResume, "[CONFIG] Analyze-specific system prompt: loaded from config/file"},
		{snapshot.Analyze.UserPrompts.AnalyzeResume, "[CONFIG] Analyze-specific user prompt: loaded from config/file"},
		{snapshot.Optimize.SystemPrompts.OptimizeResume, "[CONFIG] Optimize-specific system prompt: loaded from config/file"},
		{snapshot.Optimize.UserPrompts.OptimizeResume, "[CONFIG] Optimize-specific user prompt: loaded from config/file"},
		{snapshot.CoverLetter.SystemPrompts.CoverLetter, "[CONFIG] Cover-letter-specific system prompt: loaded from config/file"},
		{snapshot.CoverLetter.UserPrompts.CoverLetter, "[CONFIG] Cover-letter-specific user prompt: loaded from config/file"},
	}

	for _, check := range promptChecks {
		if check.content != "" {
			log.Println(check.message)
			promptCount++
		}
	}

	if promptCount == 0 {
		log.Println("[CONFIG] No custom prompts loaded - using built-in defaults")
	} else {
		log.Printf("[CONFIG] Total custom prompts loaded: %d", promptCount)
	}

	log.Println("[CONFIG] ==========================================")
}
