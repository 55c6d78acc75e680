// Package shared provides common helpers for working with GCP IAM member
// strings across modules.
package shared

import "strings"

// IAM member prefixes as they appear in policy bindings.
const (
	MemberPrefixUser           = "user:"
	MemberPrefixServiceAccount = "serviceAccount:"
	MemberPrefixGroup          = "group:"
	MemberPrefixDomain         = "domain:"
	MemberPrefixDeleted        = "deleted:"
	MemberPrefixProjectOwner   = "projectOwner:"
	MemberPrefixProjectEditor  = "projectEditor:"
	MemberPrefixProjectViewer  = "projectViewer:"

	MemberAllUsers              = "allUsers"
	MemberAllAuthenticatedUsers = "allAuthenticatedUsers"
)

// ExtractPrincipalEmail extracts the email/identifier from an IAM member
// string: the part after the first ":", or the original string if no prefix.
//
// Examples:
//   - "user:admin@example.com" -> "admin@example.com"
//   - "serviceAccount:sa@project.iam.gserviceaccount.com" -> "sa@project.iam.gserviceaccount.com"
//   - "allUsers" -> "allUsers"
func ExtractPrincipalEmail(member string) string {
	if idx := strings.Index(member, ":"); idx != -1 {
		return member[idx+1:]
	}
	return member
}

// IsPublicPrincipal checks if a member represents public access.
// Returns true for "allUsers" or "allAuthenticatedUsers".
func IsPublicPrincipal(member string) bool {
	return member == MemberAllUsers || member == MemberAllAuthenticatedUsers
}

// IsServiceAccount checks if a member is a service account.
func IsServiceAccount(member string) bool {
	return strings.HasPrefix(member, MemberPrefixServiceAccount)
}

// IsUser checks if a member is a user.
func IsUser(member string) bool {
	return strings.HasPrefix(member, MemberPrefixUser)
}

// IsGroup checks if a member is a group.
func IsGroup(member string) bool {
	return strings.HasPrefix(member, MemberPrefixGroup)
}

// IsDeleted checks if a member carries the deleted: prefix.
func IsDeleted(member string) bool {
	return strings.HasPrefix(member, MemberPrefixDeleted)
}

// HasPublicMember reports whether any member of a binding grants public
// access.
func HasPublicMember(members []string) bool {
	for _, m := range members {
		if IsPublicPrincipal(m) {
			return true
		}
	}
	return false
}

// ExtractServiceAccountProject extracts the project ID from a service account
// email of the form name@project-id.iam.gserviceaccount.com. Returns "" for
// any other shape.
func ExtractServiceAccountProject(saEmail string) string {
	email := ExtractPrincipalEmail(saEmail)

	suffix := ".iam.gserviceaccount.com"
	if !strings.HasSuffix(email, suffix) {
		return ""
	}

	atIdx := strings.Index(email, "@")
	if atIdx == -1 {
		return ""
	}
	return email[atIdx+1 : len(email)-len(suffix)]
}
