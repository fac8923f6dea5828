package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// DUID is the Duke unique identifier for a person. Canonical DUIDs consist
// solely of decimal digits; anything else is free text that must go through
// directory resolution first.
type DUID string

// Validate checks if the DUID is canonical
func (d DUID) Validate() error {
	if d == "" {
		return goerr.New("DUID cannot be empty")
	}
	if !d.IsCanonical() {
		return goerr.New("DUID must be decimal digits", goerr.V("duid", string(d)))
	}
	return nil
}

// IsCanonical reports whether the value consists solely of decimal digits.
func (d DUID) IsCanonical() bool {
	if d == "" {
		return false
	}
	for _, r := range d {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// String returns the string representation of DUID
func (d DUID) String() string {
	return string(d)
}

// NetID is a person's Duke network account name
type NetID string

// Validate checks if the NetID is valid
func (n NetID) Validate() error {
	if n == "" {
		return goerr.New("netid cannot be empty")
	}
	return nil
}

// String returns the string representation of NetID
func (n NetID) String() string {
	return string(n)
}

// LDAPKey identifies a person record in the directory API
type LDAPKey string

// Validate checks if the LDAPKey is valid
func (k LDAPKey) Validate() error {
	if k == "" {
		return goerr.New("ldapkey cannot be empty")
	}
	return nil
}

// String returns the string representation of LDAPKey
func (k LDAPKey) String() string {
	return string(k)
}
