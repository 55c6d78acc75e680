package iambindingservice

import (
	"fmt"
	"strings"

	"github.com/praetorian-inc/graph-google-cloud-1/gcp/shared"
	"github.com/praetorian-inc/graph-google-cloud-1/graph"
)

// PrincipalKind classifies one IAM member string.
type PrincipalKind string

const (
	PrincipalUser           PrincipalKind = "user"
	PrincipalServiceAccount PrincipalKind = "serviceAccount"
	PrincipalGroup          PrincipalKind = "group"
	PrincipalDomain         PrincipalKind = "domain"
	PrincipalAllUsers       PrincipalKind = "allUsers"
	PrincipalAllAuthedUsers PrincipalKind = "allAuthenticatedUsers"
	PrincipalProjectOwner   PrincipalKind = "projectOwner"
	PrincipalProjectEditor  PrincipalKind = "projectEditor"
	PrincipalProjectViewer  PrincipalKind = "projectViewer"
)

// PrincipalDescriptor is a parsed IAM member string: what kind of principal it
// names, its identifier (email, domain, or project ID), and whether the
// underlying identity has been deleted.
type PrincipalDescriptor struct {
	Kind       PrincipalKind
	Identifier string
	Deleted    bool
	Raw        string
}

// ParseMember parses an IAM member string into a PrincipalDescriptor. Deleted
// members ("deleted:user:alice@example.com?uid=123") are unwrapped and marked;
// the uid suffix is dropped from the identifier. Unknown prefixes are an
// error, which callers treat as skip-with-warning.
func ParseMember(member string) (PrincipalDescriptor, error) {
	descriptor := PrincipalDescriptor{Raw: member}

	rest := member
	if shared.IsDeleted(member) {
		descriptor.Deleted = true
		rest = strings.TrimPrefix(member, shared.MemberPrefixDeleted)
		if idx := strings.Index(rest, "?uid="); idx != -1 {
			rest = rest[:idx]
		}
	}

	switch {
	case rest == shared.MemberAllUsers:
		descriptor.Kind = PrincipalAllUsers
		descriptor.Identifier = rest
	case rest == shared.MemberAllAuthenticatedUsers:
		descriptor.Kind = PrincipalAllAuthedUsers
		descriptor.Identifier = rest
	case shared.IsUser(rest):
		descriptor.Kind = PrincipalUser
		descriptor.Identifier = shared.ExtractPrincipalEmail(rest)
	case shared.IsServiceAccount(rest):
		descriptor.Kind = PrincipalServiceAccount
		descriptor.Identifier = shared.ExtractPrincipalEmail(rest)
	case shared.IsGroup(rest):
		descriptor.Kind = PrincipalGroup
		descriptor.Identifier = shared.ExtractPrincipalEmail(rest)
	case strings.HasPrefix(rest, shared.MemberPrefixDomain):
		descriptor.Kind = PrincipalDomain
		descriptor.Identifier = shared.ExtractPrincipalEmail(rest)
	case strings.HasPrefix(rest, shared.MemberPrefixProjectOwner):
		descriptor.Kind = PrincipalProjectOwner
		descriptor.Identifier = shared.ExtractPrincipalEmail(rest)
	case strings.HasPrefix(rest, shared.MemberPrefixProjectEditor):
		descriptor.Kind = PrincipalProjectEditor
		descriptor.Identifier = shared.ExtractPrincipalEmail(rest)
	case strings.HasPrefix(rest, shared.MemberPrefixProjectViewer):
		descriptor.Kind = PrincipalProjectViewer
		descriptor.Identifier = shared.ExtractPrincipalEmail(rest)
	default:
		return descriptor, fmt.Errorf("unrecognized IAM member %q", member)
	}

	if descriptor.Identifier == "" {
		return descriptor, fmt.Errorf("IAM member %q has an empty identifier", member)
	}
	return descriptor, nil
}

// principalEdge is how one principal kind connects to its binding: the entity
// type of the far side, the relationship class, and the edge direction.
type principalEdge struct {
	entityType string
	class      string
	direction  string
}

// Individually-addressable principals are the subject of their edge, so the
// edge runs principal -> binding (reverse). The public pseudo-principals point
// the other way: the binding is OPEN_TO everyone. Legacy projectOwner/Editor/
// Viewer members resolve to the project entity itself.
var principalEdges = map[PrincipalKind]principalEdge{
	PrincipalUser:           {UserEntityType, AssignedRelationshipClass, graph.DirectionReverse},
	PrincipalServiceAccount: {ServiceAccountEntityType, AssignedRelationshipClass, graph.DirectionReverse},
	PrincipalGroup:          {GroupEntityType, AssignedRelationshipClass, graph.DirectionReverse},
	PrincipalDomain:         {DomainEntityType, AssignedRelationshipClass, graph.DirectionReverse},
	PrincipalAllUsers:       {EveryoneEntityType, OpenToRelationshipClass, graph.DirectionForward},
	PrincipalAllAuthedUsers: {EveryoneEntityType, OpenToRelationshipClass, graph.DirectionForward},
	PrincipalProjectOwner:   {ProjectEntityType, AssignedRelationshipClass, graph.DirectionReverse},
	PrincipalProjectEditor:  {ProjectEntityType, AssignedRelationshipClass, graph.DirectionReverse},
	PrincipalProjectViewer:  {ProjectEntityType, AssignedRelationshipClass, graph.DirectionReverse},
}

// PrincipalKey is the graph key a principal entity would carry. Users,
// service accounts, and groups key on their email; domains on the domain
// name; the public pseudo-principals on their literal member string; legacy
// project members on the project ID they reference.
func PrincipalKey(d PrincipalDescriptor) string {
	return d.Identifier
}
