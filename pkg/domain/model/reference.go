package model

// ReferenceData holds the calendar's known group (sponsor) and category
// names. The lists are maintained in a local configuration file and served
// as-is, so tool callers can learn the filter vocabulary without scanning
// the feed.
type ReferenceData struct {
	Groups     []string
	Categories []string
}

// ReferenceListResult is the payload for a reference vocabulary lookup
type ReferenceListResult struct {
	Data  []string `json:"data"`
	Count int      `json:"count"`
}
