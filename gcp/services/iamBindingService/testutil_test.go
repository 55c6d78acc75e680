package iambindingservice

import (
	"context"
	"errors"
	"strings"

	assetpb "cloud.google.com/go/asset/apiv1/assetpb"
	iampb "cloud.google.com/go/iam/apiv1/iampb"
	"google.golang.org/genproto/googleapis/type/expr"

	policysearchservice "github.com/praetorian-inc/graph-google-cloud-1/gcp/services/policySearchService"
	"github.com/praetorian-inc/graph-google-cloud-1/graph"
	"github.com/praetorian-inc/graph-google-cloud-1/internal"
)

// fakeSearcher serves pre-built pages keyed by page token. The empty token is
// the first page.
type fakeSearcher struct {
	pages map[string]*policysearchservice.PolicyPage
	errs  map[string]error
	calls int
}

func (f *fakeSearcher) SearchIamPolicies(ctx context.Context, scope, pageToken string) (*policysearchservice.PolicyPage, error) {
	f.calls++
	if err, ok := f.errs[pageToken]; ok {
		return nil, err
	}
	if page, ok := f.pages[pageToken]; ok {
		return page, nil
	}
	return &policysearchservice.PolicyPage{}, nil
}

// fakeServiceLister answers from a fixed project -> enabled services map.
type fakeServiceLister struct {
	enabled map[string]map[string]struct{}
	err     error
}

func (f *fakeServiceLister) GetEnabledServiceNames(ctx context.Context, project string) (map[string]struct{}, error) {
	if f.err != nil {
		return nil, f.err
	}
	key := strings.TrimPrefix(project, "projects/")
	if services, ok := f.enabled[key]; ok {
		return services, nil
	}
	return map[string]struct{}{}, nil
}

type recordingNotifier struct {
	events []MissingPermissionEvent
}

func (n *recordingNotifier) NotifyMissingPermission(event MissingPermissionEvent) {
	n.events = append(n.events, event)
}

type fakeRoleGetter struct {
	roles map[string]RoleCatalogEntry
}

func (f *fakeRoleGetter) GetRole(ctx context.Context, name string) (string, []string, error) {
	if entry, ok := f.roles[name]; ok {
		return entry.Title, entry.Permissions, nil
	}
	return "", nil, &notFoundError{name}
}

type notFoundError struct{ name string }

func (e *notFoundError) Error() string { return "role not found: " + e.name }

var errListFailed = errors.New("service usage unavailable")

func testLogger() internal.Logger {
	return internal.NewLogger()
}

func newTestService(searcher *fakeSearcher, enabled map[string]map[string]struct{}) (*IAMBindingService, *graph.MemStore, *recordingNotifier) {
	store := graph.NewMemStore()
	notifier := &recordingNotifier{}
	service := New(store, searcher, &fakeServiceLister{enabled: enabled}, testLogger())
	service.Notifier = notifier
	return service, store, notifier
}

func searchResult(resource, project, role string, members []string, condition *expr.Expr) *assetpb.IamPolicySearchResult {
	return &assetpb.IamPolicySearchResult{
		Resource: resource,
		Project:  project,
		Policy: &iampb.Policy{
			Bindings: []*iampb.Binding{{Role: role, Members: members, Condition: condition}},
		},
	}
}
