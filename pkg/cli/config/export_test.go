package config

import "github.com/duke-colab/bluebook/pkg/service/calendar"

// NewGeminiForTest builds a Gemini config without going through CLI flags
func NewGeminiForTest(projectID, location, model string) *Gemini {
	return &Gemini{
		projectID: projectID,
		location:  location,
		model:     model,
	}
}

// NewUpstreamForTest builds an Upstream config without going through CLI
// flags, with the client defaults for timeout and retries
func NewUpstreamForTest(calendarURL, directoryURL, directoryKey, scholarsURL string) *Upstream {
	return &Upstream{
		calendarURL:  calendarURL,
		directoryURL: directoryURL,
		directoryKey: directoryKey,
		scholarsURL:  scholarsURL,
		timeout:      calendar.DefaultTimeout,
		retryMax:     calendar.DefaultRetryMax,
	}
}
