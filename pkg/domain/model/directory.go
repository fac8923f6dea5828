package model

import (
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
)

// DirectoryPerson is a single directory search record. Every field is
// required; records missing any of them are dropped by the resolver.
// Field names follow the upstream API, including the camelCase givenName.
type DirectoryPerson struct {
	LDAPKey     string `json:"ldapkey"`
	Surname     string `json:"sn"`
	GivenName   string `json:"givenName"`
	DUID        string `json:"duid"`
	NetID       string `json:"netid"`
	DisplayName string `json:"display_name"`
}

// Validate checks that all required directory fields are present
func (p *DirectoryPerson) Validate() error {
	fields := map[string]string{
		"ldapkey":      p.LDAPKey,
		"sn":           p.Surname,
		"givenName":    p.GivenName,
		"duid":         p.DUID,
		"netid":        p.NetID,
		"display_name": p.DisplayName,
	}
	for name, v := range fields {
		if v == "" {
			return goerr.New("directory record is missing a required field", goerr.V("field", name))
		}
	}
	return nil
}

// ParseDirectoryPerson decodes and validates one raw search record.
// A record that does not decode, or decodes with missing fields, is
// invalid as a whole; the caller decides whether to drop or fail.
func ParseDirectoryPerson(raw json.RawMessage) (*DirectoryPerson, error) {
	var p DirectoryPerson
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, goerr.Wrap(err, "failed to decode directory record")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// DetailedPerson is the full directory record behind a single ldapkey
type DetailedPerson struct {
	LDAPKey            string   `json:"ldapkey"`
	Surname            string   `json:"sn"`
	GivenName          string   `json:"givenName"`
	DUID               string   `json:"duid"`
	NetID              string   `json:"netid"`
	DisplayName        string   `json:"display_name"`
	Nickname           string   `json:"nickname,omitempty"`
	Titles             []string `json:"titles,omitempty"`
	PrimaryAffiliation string   `json:"primary_affiliation,omitempty"`
	Emails             []string `json:"emails,omitempty"`
	PostOfficeBox      []string `json:"post_office_box,omitempty"`
	Address            []string `json:"address,omitempty"`
	Phones             []string `json:"phones,omitempty"`
	Department         string   `json:"department,omitempty"`
}

// Validate checks that the required identity fields are present
func (p *DetailedPerson) Validate() error {
	fields := map[string]string{
		"ldapkey":      p.LDAPKey,
		"sn":           p.Surname,
		"givenName":    p.GivenName,
		"duid":         p.DUID,
		"netid":        p.NetID,
		"display_name": p.DisplayName,
	}
	for name, v := range fields {
		if v == "" {
			return goerr.New("person record is missing a required field", goerr.V("field", name))
		}
	}
	return nil
}

// ParseDetailedPerson decodes and validates a person detail record
func ParseDetailedPerson(raw json.RawMessage) (*DetailedPerson, error) {
	var p DetailedPerson
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, goerr.Wrap(err, "failed to decode person record")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// DirectorySearchResult is the payload for a directory search. Error is
// set instead of a Go error for ordinary upstream failures so the payload
// shape stays stable for tool callers.
type DirectorySearchResult struct {
	Results []*DirectoryPerson `json:"results"`
	Count   int                `json:"count"`
	Query   string             `json:"query"`
	Error   string             `json:"error,omitempty"`
}

// PersonDetailResult is the payload for a person detail lookup
type PersonDetailResult struct {
	Person  *DetailedPerson `json:"person"`
	LDAPKey string          `json:"ldapkey"`
	Error   string          `json:"error,omitempty"`
}
