package config

import (
	"sync"
)

// loadedPrompts is guarded by loadedPromptsMu because the prompt watcher may
// replace it at runtime while AI services read it per request.
var (
	loadedPromptsMu sync.RWMutex
	loadedPrompts   AllLoadedPrompts
)

// LoadedPrompts holds the content of prompts loaded from files
type LoadedPrompts struct {
	SystemPrompts LoadedSystemPrompts
	UserPrompts   LoadedUserPrompts
}

// LoadedSystemPrompts contains loaded system-level instructions
type LoadedSystemPrompts struct {
	ExtractText    string
	ParseResume    string
	AnalyzeResume  string
	OptimizeResume string
	CoverLetter    string
}

// LoadedUserPrompts contains loaded user-level prompt templates
type LoadedUserPrompts struct {
	ExtractText    string
	ParseResume    string
	AnalyzeResume  string
	OptimizeResume string
	CoverLetter    string
}

// OperationLoadedPrompts holds loaded prompts for a specific operation
type OperationLoadedPrompts struct {
	SystemPrompts LoadedSystemPrompts
	UserPrompts   LoadedUserPrompts
}

// AllLoadedPrompts holds all loaded prompts for all operations
type AllLoadedPrompts struct {
	Global      LoadedPrompts
	Extract     OperationLoadedPrompts
	Parse       OperationLoadedPrompts
	Analyze     OperationLoadedPrompts
	Optimize    OperationLoadedPrompts
	CoverLetter OperationLoadedPrompts
}

// getLoadedPrompts returns a snapshot of the currently loaded prompts
func getLoadedPrompts() AllLoadedPrompts {
	loadedPromptsMu.RLock()
	defer loadedPromptsMu.RUnlock()
	return loadedPrompts
}

// setLoadedPrompts atomically replaces the loaded prompt set
func setLoadedPrompts(p AllLoadedPrompts) {
	loadedPromptsMu.Lock()
	defer loadedPromptsMu.Unlock()
	loadedPrompts = p
}

// GetPromptsForOperation returns a copy of the loaded prompts for an operation type
func GetPromptsForOperation(operationType string) OperationLoadedPrompts {
	snapshot := getLoadedPrompts()

	switch operationType {
	case "extract":
		return snapshot.Extract
	case "parse":
		return snapshot.Parse
	case "analyze":
		return snapshot.Analyze
	case "optimize":
		return snapshot.Optimize
	case "coverletter":
		return snapshot.CoverLetter
	default:
		return OperationLoadedPrompts{
			SystemPrompts: snapshot.Global.SystemPrompts,
			UserPrompts:   snapshot.Global.UserPrompts,
		}
	}
}
