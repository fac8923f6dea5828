package model

// ScholarPublication is one publication from a scholar's profile
type ScholarPublication struct {
	Title           string   `json:"title"`
	Authors         []string `json:"authors,omitempty"`
	Journal         string   `json:"journal,omitempty"`
	Year            string   `json:"year,omitempty"`
	Citation        string   `json:"citation,omitempty"`
	URL             string   `json:"url,omitempty"`
	PublicationType string   `json:"publication_type,omitempty"`
}

// ScholarGrant is one grant from a scholar's profile
type ScholarGrant struct {
	Title          string `json:"title"`
	AwardedBy      string `json:"awarded_by,omitempty"`
	Role           string `json:"role,omitempty"`
	StartDate      string `json:"start_date,omitempty"`
	EndDate        string `json:"end_date,omitempty"`
	AdministeredBy string `json:"administered_by,omitempty"`
}

// ScholarEducation is one education entry from a scholar's profile
type ScholarEducation struct {
	Degree      string `json:"degree,omitempty"`
	Institution string `json:"institution,omitempty"`
	Year        string `json:"year,omitempty"`
	Description string `json:"description,omitempty"`
}

// ScholarDetails is the projected profile of a scholar
type ScholarDetails struct {
	DUID              string             `json:"duid"`
	Name              string             `json:"name"`
	Title             string             `json:"title,omitempty"`
	Overview          string             `json:"overview,omitempty"`
	Department        string             `json:"department,omitempty"`
	Email             string             `json:"email,omitempty"`
	Phone             string             `json:"phone,omitempty"`
	Office            string             `json:"office,omitempty"`
	ResearchInterests []string           `json:"research_interests,omitempty"`
	Education         []ScholarEducation `json:"education,omitempty"`
	ProfileURL        string             `json:"profile_url,omitempty"`
	ImageURL          string             `json:"image_url,omitempty"`
}

// PublicationsResult is the payload for a publications query. DUID echoes
// the resolved id, or the raw input when resolution failed.
type PublicationsResult struct {
	Publications []ScholarPublication `json:"publications"`
	Count        int                  `json:"count"`
	DUID         string               `json:"duid"`
	Error        string               `json:"error,omitempty"`
}

// GrantsResult is the payload for a grants query
type GrantsResult struct {
	Grants []ScholarGrant `json:"grants"`
	Count  int            `json:"count"`
	DUID   string         `json:"duid"`
	Error  string         `json:"error,omitempty"`
}

// ScholarDetailsResult is the payload for a scholar profile query
type ScholarDetailsResult struct {
	Scholar *ScholarDetails `json:"scholar"`
	DUID    string          `json:"duid"`
	Error   string          `json:"error,omitempty"`
}
