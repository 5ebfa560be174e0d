package models

import "strings"

// Group represents a named collection of members sharing expenses.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Roommates", "Ski Trip").
	Name string

	// OwnerEmail is the email of the user who created the group.
	OwnerEmail string

	// Members is the ordered member list. Names are unique within the group.
	Members []Member

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// Member is a named participant in a group.
type Member struct {
	Name  string
	Email string // optional
}

// MemberNames returns the member names in group order.
func (g *Group) MemberNames() []string {
	names := make([]string, len(g.Members))
	for i, m := range g.Members {
		names[i] = m.Name
	}
	return names
}

// FindMember returns the member with the given name.
func (g *Group) FindMember(name string) (Member, bool) {
	for _, m := range g.Members {
		if m.Name == name {
			return m, true
		}
	}
	return Member{}, false
}

// HasMember reports whether name is a current member.
func (g *Group) HasMember(name string) bool {
	_, ok := g.FindMember(name)
	return ok
}

// CanAccess reports whether the user with the given email owns the group
// or is listed as one of its members. Emails compare case-insensitively.
func (g *Group) CanAccess(email string) bool {
	if email == "" {
		return false
	}
	if strings.EqualFold(g.OwnerEmail, email) {
		return true
	}
	for _, m := range g.Members {
		if m.Email != "" && strings.EqualFold(m.Email, email) {
			return true
		}
	}
	return false
}

// Validate checks the group name and member list.
func (g *Group) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return &ValidationError{Field: "name", Reason: "group name is required"}
	}
	seen := make(map[string]bool, len(g.Members))
	for i, m := range g.Members {
		if strings.TrimSpace(m.Name) == "" {
			return &ValidationError{Field: "members", Reason: "member name is required", Index: i}
		}
		if seen[m.Name] {
			return &ValidationError{Field: "members", Reason: "duplicate member name " + quote(m.Name), Index: i}
		}
		seen[m.Name] = true
		if m.Email != "" && !strings.Contains(m.Email, "@") {
			return &ValidationError{Field: "members", Reason: "invalid email " + quote(m.Email), Index: i}
		}
	}
	return nil
}
