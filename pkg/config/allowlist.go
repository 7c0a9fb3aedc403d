package config

import "strings"

// AllowList is the set of registrant emails permitted to submit.
// It is a usability gate for attendees who mistype their purchase email, not an access control.
type AllowList struct {
	emails map[string]struct{}
}

// ParseAllowList splits a comma-separated list, trimming and lower-casing each entry.
// Empty entries are ignored; a list with no entries is not configured.
func ParseAllowList(raw string) AllowList {
	emails := make(map[string]struct{})
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.ToLower(strings.TrimSpace(entry))
		if entry != "" {
			emails[entry] = struct{}{}
		}
	}
	return AllowList{emails: emails}
}

// Configured reports whether the allow-list check applies
func (a AllowList) Configured() bool {
	return len(a.emails) > 0
}

// Contains reports whether email matches an entry, ignoring case
func (a AllowList) Contains(email string) bool {
	_, ok := a.emails[strings.ToLower(email)]
	return ok
}

// Len returns the number of entries
func (a AllowList) Len() int {
	return len(a.emails)
}
