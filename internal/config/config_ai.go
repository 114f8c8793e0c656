package config

// applyOperationDefaults applies global defaults to operation-specific configuration
func (c *Config) applyOperationDefaults(opCfg *OperationAIConfig) {
	if opCfg.Provider == "" {
		opCfg.Provider = c.AI.Provider
	}
	if opCfg.Model == "" {
		opCfg.Model = c.AI.Model
	}
	if opCfg.Timeout == nil {
		opCfg.Timeout = &c.AI.Timeout
	}
	if opCfg.APIKey == "" {
		opCfg.APIKey = c.AI.APIKey
	}
	if opCfg.MaxRetries == nil {
		opCfg.MaxRetries = &c.AI.MaxRetries
	}
	if opCfg.Temperature == nil {
		opCfg.Temperature = &c.AI.Temperature
	}
	// UseSystemPrompts: apply global default only if not explicitly set
	if opCfg.UseSystemPrompts == nil {
		opCfg.UseSystemPrompts = &c.AI.UseSystemPrompts
	}
}

// GetExtractConfig returns the AI configuration for extract operations with fallback to global config
func (c *Config) GetExtractConfig() OperationAIConfig {
	config := c.AI.Extract

	// Apply common defaults
	c.applyOperationDefaults(&config)

	// Apply extract-specific prompt fallbacks
	if config.CustomPrompts.SystemPrompts.ExtractText == "" {
		config.CustomPrompts.SystemPrompts.ExtractText = c.AI.CustomPrompts.SystemPrompts.ExtractText
	}
	if config.CustomPrompts.UserPrompts.ExtractText == "" {
		config.CustomPrompts.UserPrompts.ExtractText = c.AI.CustomPrompts.UserPrompts.ExtractText
	}
	// Also copy file paths for potential later loading
	if config.CustomPrompts.SystemPrompts.ExtractTextFile == "" {
		config.CustomPrompts.SystemPrompts.ExtractTextFile = c.AI.CustomPrompts.SystemPrompts.ExtractTextFile
	}
	if config.CustomPrompts.UserPrompts.ExtractTextFile == "" {
		config.CustomPrompts.UserPrompts.ExtractTextFile = c.AI.CustomPrompts.UserPrompts.ExtractTextFile
	}

	return config
}

// GetParseConfig returns the AI configuration for parse operations with fallback to global config
func (c *Config) GetParseConfig() OperationAIConfig {
	config := c.AI.Parse

	// Apply common defaults
	c.applyOperationDefaults(&config)

	// Apply parse-specific prompt fallbacks
	if config.CustomPrompts.SystemPrompts.ParseResume == "" {
		config.CustomPrompts.SystemPrompts.ParseResume = c.AI.CustomPrompts.SystemPrompts.ParseResume
	}
	if config.CustomPrompts.UserPrompts.ParseResume == "" {
		config.CustomPrompts.UserPrompts.ParseResume = c.AI.CustomPrompts.UserPrompts.ParseResume
	}
	// Also copy file paths for potential later loading
	if config.CustomPrompts.SystemPrompts.ParseResumeFile == "" {
		config.CustomPrompts.SystemPrompts.ParseResumeFile = c.AI.CustomPrompts.SystemPrompts.ParseResumeFile
	}
	if config.CustomPrompts.UserPrompts.ParseResumeFile == "" {
		config.CustomPrompts.UserPrompts.ParseResumeFile = c.AI.CustomPrompts.UserPrompts.ParseResumeFile
	}

	return config
}

// GetAnalyzeConfig returns the AI configuration for analyze operations with fallback to global config
func (c *Config) GetAnalyzeConfig() OperationAIConfig {
	config := c.AI.Analyze

	// Apply common defaults
	c.applyOperationDefaults(&config)

	// Apply analyze-specific prompt fallbacks
	if config.CustomPrompts.SystemPrompts.AnalyzeResume == "" {
		config.CustomPrompts.SystemPrompts.AnalyzeResume = c.AI.CustomPrompts.SystemPrompts.AnalyzeResume
	}
	if config.CustomPrompts.UserPrompts.AnalyzeResume == "" {
		config.CustomPrompts.UserPrompts.AnalyzeResume = c.AI.CustomPrompts.UserPrompts.AnalyzeResume
	}
	// Also copy file paths for potential later loading
	if config.CustomPrompts.SystemPrompts.AnalyzeResumeFile == "" {
		config.CustomPrompts.SystemPrompts.AnalyzeResumeFile = c.AI.CustomPrompts.SystemPrompts.AnalyzeResumeFile
	}
	if config.CustomPrompts.UserPrompts.AnalyzeResumeFile == "" {
		config.CustomPrompts.UserPrompts.AnalyzeResumeFile = c.AI.CustomPrompts.UserPrompts.AnalyzeResumeFile
	}

	return config
}

// GetOptimizeConfig returns the AI configuration for optimize operations with fallback to global config
func (c *Config) GetOptimizeConfig() OperationAIConfig {
	config := c.AI.Optimize

	// Apply common defaults
	c.applyOperationDefaults(&config)

	// Apply optimize-specific prompt fallbacks
	if config.CustomPrompts.SystemPrompts.OptimizeResume == "" {
		config.CustomPrompts.SystemPrompts.OptimizeResume = c.AI.CustomPrompts.SystemPrompts.OptimizeResume
	}
	if config.CustomPrompts.UserPrompts.OptimizeResume == "" {
		config.CustomPrompts.UserPrompts.OptimizeResume = c.AI.CustomPrompts.UserPrompts.OptimizeResume
	}
	// Also copy file paths for potential later loading
	if config.CustomPrompts.SystemPrompts.OptimizeResumeFile == "" {
		config.CustomPrompts.SystemPrompts.OptimizeResumeFile = c.AI.CustomPrompts.SystemPrompts.OptimizeResumeFile
	}
	if config.CustomPrompts.UserPrompts.OptimizeResumeFile == "" {
		config.CustomPrompts.UserPrompts.OptimizeResumeFile = c.AI.CustomPrompts.UserPrompts.OptimizeResumeFile
	}

	return config
}

// GetCoverLetterConfig returns the AI configuration for cover letter operations with fallback to global config
func (c *Config) GetCoverLetterConfig() OperationAIConfig {
	config := c.AI.CoverLetter

	// Apply common defaults
	c.applyOperationDefaults(&config)

	// Apply cover-letter-specific prompt fallbacks
	if config.CustomPrompts.SystemPrompts.CoverLetter == "" {
		config.CustomPrompts.SystemPrompts.CoverLetter = c.AI.CustomPrompts.SystemPrompts.CoverLetter
	}
	if config.CustomPrompts.UserPrompts.CoverLetter == "" {
		config.CustomPrompts.UserPrompts.CoverLetter = c.AI.CustomPrompts.UserPrompts.CoverLetter
	}
	// Also copy file paths for potential later loading
	if config.CustomPrompts.SystemPrompts.CoverLetterFile == "" {
		config.CustomPrompts.SystemPrompts.CoverLetterFile = c.AI.CustomPrompts.SystemPrompts.CoverLetterFile
	}
	if config.CustomPrompts.UserPrompts.CoverLetterFile == "" {
		config.CustomPrompts.UserPrompts.CoverLetterFile = c.AI.CustomPrompts.UserPrompts.CoverLetterFile
	}

	return config
}

// GetLoadedExtractPrompts returns a copy of the loaded prompts for extract operation
func (c *Config) GetLoadedExtractPrompts() OperationLoadedPrompts {
	return getLoadedPrompts().Extract
}

// GetLoadedParsePrompts returns a copy of the loaded prompts for parse operation
func (c *Config) GetLoadedParsePrompts() OperationLoadedPrompts {
	return getLoadedPrompts().Parse
}

// GetLoadedAnalyzePrompts returns a copy of the loaded prompts for analyze operation
func (c *Config) GetLoadedAnalyzePrompts() OperationLoadedPrompts {
	return getLoadedPrompts().Analyze
}

// GetLoadedOptimizePrompts returns a copy of the loaded prompts for optimize operation
func (c *Config) GetLoadedOptimizePrompts() OperationLoadedPrompts {
	return getLoadedPrompts().Optimize
}

// GetLoadedCoverLetterPrompts returns a copy of the loaded prompts for cover letter operation
func (c *Config) GetLoadedCoverLetterPrompts() OperationLoadedPrompts {
	return getLoadedPrompts().CoverLetter
}

// GetLoadedGlobalPrompts returns a copy of the loaded global prompts
func (c *Config) GetLoadedGlobalPrompts() LoadedPrompts {
	return getLoadedPrompts().Global
}
