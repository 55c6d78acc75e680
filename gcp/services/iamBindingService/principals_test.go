package iambindingservice

import (
	"testing"

	"github.com/praetorian-inc/graph-google-cloud-1/graph"
)

func TestParseMember(t *testing.T) {
	tests := []struct {
		member  string
		want    PrincipalDescriptor
		wantErr bool
	}{
		{
			member: "user:alice@example.com",
			want:   PrincipalDescriptor{Kind: PrincipalUser, Identifier: "alice@example.com"},
		},
		{
			member: "serviceAccount:sa@my-proj.iam.gserviceaccount.com",
			want:   PrincipalDescriptor{Kind: PrincipalServiceAccount, Identifier: "sa@my-proj.iam.gserviceaccount.com"},
		},
		{
			member: "group:devs@example.com",
			want:   PrincipalDescriptor{Kind: PrincipalGroup, Identifier: "devs@example.com"},
		},
		{
			member: "domain:example.com",
			want:   PrincipalDescriptor{Kind: PrincipalDomain, Identifier: "example.com"},
		},
		{
			member: "allUsers",
			want:   PrincipalDescriptor{Kind: PrincipalAllUsers, Identifier: "allUsers"},
		},
		{
			member: "allAuthenticatedUsers",
			want:   PrincipalDescriptor{Kind: PrincipalAllAuthedUsers, Identifier: "allAuthenticatedUsers"},
		},
		{
			member: "projectOwner:my-proj",
			want:   PrincipalDescriptor{Kind: PrincipalProjectOwner, Identifier: "my-proj"},
		},
		{
			member: "projectEditor:my-proj",
			want:   PrincipalDescriptor{Kind: PrincipalProjectEditor, Identifier: "my-proj"},
		},
		{
			member: "projectViewer:my-proj",
			want:   PrincipalDescriptor{Kind: PrincipalProjectViewer, Identifier: "my-proj"},
		},
		{
			member: "deleted:user:bob@example.com?uid=12345",
			want:   PrincipalDescriptor{Kind: PrincipalUser, Identifier: "bob@example.com", Deleted: true},
		},
		{
			member: "deleted:serviceAccount:gone@my-proj.iam.gserviceaccount.com?uid=67890",
			want:   PrincipalDescriptor{Kind: PrincipalServiceAccount, Identifier: "gone@my-proj.iam.gserviceaccount.com", Deleted: true},
		},
		{member: "specialGroup:projectReaders", wantErr: true},
		{member: "user:", wantErr: true},
		{member: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.member, func(t *testing.T) {
			got, err := ParseMember(tt.member)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %+v", tt.member, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMember(%q): %v", tt.member, err)
			}
			if got.Kind != tt.want.Kind || got.Identifier != tt.want.Identifier || got.Deleted != tt.want.Deleted {
				t.Errorf("ParseMember(%q) = %+v, want %+v", tt.member, got, tt.want)
			}
			if got.Raw != tt.member {
				t.Errorf("Raw should preserve the original member string, got %q", got.Raw)
			}
		})
	}
}

func TestPrincipalEdgesCoverEveryKind(t *testing.T) {
	kinds := []PrincipalKind{
		PrincipalUser, PrincipalServiceAccount, PrincipalGroup, PrincipalDomain,
		PrincipalAllUsers, PrincipalAllAuthedUsers,
		PrincipalProjectOwner, PrincipalProjectEditor, PrincipalProjectViewer,
	}
	for _, kind := range kinds {
		edge, ok := principalEdges[kind]
		if !ok {
			t.Errorf("no edge defined for kind %s", kind)
			continue
		}
		if edge.entityType == "" || edge.class == "" || edge.direction == "" {
			t.Errorf("incomplete edge for kind %s: %+v", kind, edge)
		}
	}
}

func TestPrincipalEdgeSemantics(t *testing.T) {
	if edge := principalEdges[PrincipalUser]; edge.class != AssignedRelationshipClass || edge.direction != graph.DirectionReverse {
		t.Errorf("users must be the subject of a reverse ASSIGNED edge, got %+v", edge)
	}
	if edge := principalEdges[PrincipalAllUsers]; edge.class != OpenToRelationshipClass ||
		edge.direction != graph.DirectionForward || edge.entityType != EveryoneEntityType {
		t.Errorf("allUsers must be a forward OPEN_TO edge at the everyone entity, got %+v", edge)
	}
	if edge := principalEdges[PrincipalProjectEditor]; edge.entityType != ProjectEntityType {
		t.Errorf("legacy project members must resolve to the project entity, got %+v", edge)
	}
}
