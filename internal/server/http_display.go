package server

import "fmt"

// displayServerInfo shows server configuration information
func (s *Server) displayServerInfo() {
	s.displayEndpoints()
	s.displayAuthInfo()
	s.displayRequestLimitInfo()
	s.displayRateLimitInfo()
}

// displayEndpoints shows available API endpoints
func (s *Server) displayEndpoints() {
	fmt.Println("Available endpoints:")
	fmt.Println("  GET  /health       - Health check")
	fmt.Println("  GET  /stats        - Server statistics")
	fmt.Println("  POST /extract-text - Extract text from a resume document (requires API key)")
	fmt.Println("  POST /parse-resume - Parse resume text into structured data (requires API key)")
	fmt.Println("  POST /analyze      - Analyze resume against a job description (requires API key)")
	fmt.Println("  POST /optimize     - Optimize resume for a job description (requires API key)")
	fmt.Println("  POST /cover-letter - Generate a cover letter (requires API key)")
	fmt.Println("  POST /sessions     - Open a hosted wizard session (requires API key)")
	fmt.Println("  GET  /sessions/{id}            - Session state (requires API key)")
	fmt.Println("  POST /sessions/{id}/details    - Merge job details into a session (requires API key)")
	fmt.Println("  POST /sessions/{id}/advance    - Enter a wizard stage (requires API key)")
	fmt.Println("  POST /sessions/{id}/regenerate - Re-run optimization or cover letter (requires API key)")
	fmt.Println("  DELETE /sessions/{id}          - Close a session (requires API key)")
}

// displayAuthInfo shows authentication configuration
func (s *Server) displayAuthInfo() {
	if len(s.APIKeys) > 0 {
		fmt.Printf("API authentication: ENABLED (%d keys configured)\n", len(s.APIKeys))
		fmt.Println("Include 'X-API-Key: <your-key>' header in requests to the operation endpoints")
	} else {
		fmt.Println("API authentication: DISABLED (no API keys configured)")
		fmt.Println("WARNING: API endpoints are publicly accessible!")
	}
}

// displayRequestLimitInfo shows request size limit configuration
func (s *Server) displayRequestLimitInfo() {
	if s.MaxRequestSize > 0 {
		fmt.Printf("Request size limit: %d bytes (%.1f MB)\n", s.MaxRequestSize, float64(s.MaxRequestSize)/(1024*1024))
	} else {
		fmt.Println("Request size limit: DISABLED")
		fmt.Println("WARNING: No request size limits configured!")
	}
}

// displayRateLimitInfo shows rate limiting configuration
func (s *Server) displayRateLimitInfo() {
	if s.RateLimit != nil && s.RateLimit.Enabled {
		fmt.Printf("Rate limiting: ENABLED (%d requests/min, burst: %d)\n",
			s.RateLimit.RequestsPerMin, s.RateLimit.BurstCapacity)
		if s.RateLimit.ByAPIKey {
			fmt.Println("  - Per API key rate limiting enabled")
		}
		if s.RateLimit.ByIP {
			fmt.Println("  - Per IP address rate limiting enabled")
		}
	} else {
		fmt.Println("Rate limiting: DISABLED")
		fmt.Println("WARNING: No rate limiting configured!")
	}
}
