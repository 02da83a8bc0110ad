package model

import "strings"

// A Item represents a database record and the rendered API response.
type Item struct {
	Base `msgpack:",inline" storm:"inline"`

	Name        string  `json:"name"        msgpack:"name"        storm:"index"`
	Description *string `json:"description" msgpack:"description"`
}

// Clone returns a deep copy of the item.
func (m *Item) Clone() *Item {
	c := *m
	if m.Description != nil {
		d := *m.Description
		c.Description = &d
	}
	return &c
}

// Match returns true if the term is contained in the name or the description, ignoring case.
// An empty term matches everything.
func (m *Item) Match(term string) bool {
	if term == "" {
		return true
	}

	term = strings.ToLower(term)
	if strings.Contains(strings.ToLower(m.Name), term) {
		return true
	}
	return m.Description != nil && strings.Contains(strings.ToLower(*m.Description), term)
}
