package shared

import "testing"

func TestExtractPrincipalEmail(t *testing.T) {
	tests := []struct {
		member string
		want   string
	}{
		{"user:admin@example.com", "admin@example.com"},
		{"serviceAccount:sa@my-proj.iam.gserviceaccount.com", "sa@my-proj.iam.gserviceaccount.com"},
		{"group:devs@example.com", "devs@example.com"},
		{"domain:example.com", "example.com"},
		{"allUsers", "allUsers"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ExtractPrincipalEmail(tt.member); got != tt.want {
			t.Errorf("ExtractPrincipalEmail(%q) = %q, want %q", tt.member, got, tt.want)
		}
	}
}

func TestIsPublicPrincipal(t *testing.T) {
	tests := []struct {
		member string
		want   bool
	}{
		{"allUsers", true},
		{"allAuthenticatedUsers", true},
		{"user:alice@example.com", false},
		{"domain:example.com", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsPublicPrincipal(tt.member); got != tt.want {
			t.Errorf("IsPublicPrincipal(%q) = %v, want %v", tt.member, got, tt.want)
		}
	}
}

func TestHasPublicMember(t *testing.T) {
	if HasPublicMember([]string{"user:a@x.com", "group:g@x.com"}) {
		t.Error("no public member expected")
	}
	if !HasPublicMember([]string{"user:a@x.com", "allUsers"}) {
		t.Error("allUsers should be detected")
	}
	if HasPublicMember(nil) {
		t.Error("empty member list has no public member")
	}
}

func TestMemberKindPredicates(t *testing.T) {
	if !IsServiceAccount("serviceAccount:sa@p.iam.gserviceaccount.com") || IsServiceAccount("user:a@x.com") {
		t.Error("IsServiceAccount misclassified")
	}
	if !IsUser("user:a@x.com") || IsUser("group:g@x.com") {
		t.Error("IsUser misclassified")
	}
	if !IsGroup("group:g@x.com") || IsGroup("domain:x.com") {
		t.Error("IsGroup misclassified")
	}
	if !IsDeleted("deleted:user:a@x.com?uid=1") || IsDeleted("user:a@x.com") {
		t.Error("IsDeleted misclassified")
	}
}

func TestExtractServiceAccountProject(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"serviceAccount:sa@my-proj.iam.gserviceaccount.com", "my-proj"},
		{"sa@my-proj.iam.gserviceaccount.com", "my-proj"},
		{"sa@my-proj.example.com", ""},
		{"user:alice@example.com", ""},
		{"not-an-email", ""},
	}
	for _, tt := range tests {
		if got := ExtractServiceAccountProject(tt.email); got != tt.want {
			t.Errorf("ExtractServiceAccountProject(%q) = %q, want %q", tt.email, got, tt.want)
		}
	}
}
