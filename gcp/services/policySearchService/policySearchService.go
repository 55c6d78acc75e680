package policysearchservice

import (
	"context"
	"time"

	assetpb "cloud.google.com/go/asset/apiv1/assetpb"
	"github.com/googleapis/gax-go/v2"
	gcpinternal "github.com/praetorian-inc/graph-google-cloud-1/internal/gcp"
	"github.com/praetorian-inc/graph-google-cloud-1/internal/gcp/sdk"
	"google.golang.org/api/iterator"
)

const defaultPageSize = 500

// retries on transient search failures before giving up
const maxSearchAttempts = 4

// PolicyPage is one page of IAM policy search results. NextPageToken is empty
// on the last page.
type PolicyPage struct {
	Results       []*assetpb.IamPolicySearchResult
	NextPageToken string
}

// PolicySearchService fetches IAM policy search results from the Cloud Asset
// API one page at a time. It owns pagination mechanics only; consumers decide
// what to do with each page.
type PolicySearchService struct {
	session  *gcpinternal.SafeSession
	pageSize int
}

func New() *PolicySearchService {
	return &PolicySearchService{pageSize: defaultPageSize}
}

func NewWithSession(session *gcpinternal.SafeSession) *PolicySearchService {
	return &PolicySearchService{session: session, pageSize: defaultPageSize}
}

// SearchIamPolicies returns the page of results at pageToken for the given
// scope ("projects/<id>", "folders/<id>", or "organizations/<id>"). Pass the
// returned NextPageToken to resume; an empty token starts from the beginning.
// Transient errors are retried with backoff; everything else is normalized
// through ParseGCPError.
func (s *PolicySearchService) SearchIamPolicies(ctx context.Context, scope, pageToken string) (*PolicyPage, error) {
	client, err := sdk.GetAssetClient(ctx, s.session)
	if err != nil {
		return nil, gcpinternal.ParseGCPError(err, "cloudasset.googleapis.com")
	}
	defer client.Close()

	backoff := gax.Backoff{
		Initial:    500 * time.Millisecond,
		Max:        10 * time.Second,
		Multiplier: 2,
	}

	var lastErr error
	for attempt := 0; attempt < maxSearchAttempts; attempt++ {
		req := &assetpb.SearchAllIamPoliciesRequest{
			Scope:    scope,
			PageSize: int32(s.pageSize),
		}

		it := client.SearchAllIamPolicies(ctx, req)
		pager := iterator.NewPager(it, s.pageSize, pageToken)

		var results []*assetpb.IamPolicySearchResult
		nextToken, err := pager.NextPage(&results)
		if err == nil {
			return &PolicyPage{Results: results, NextPageToken: nextToken}, nil
		}

		lastErr = gcpinternal.ParseGCPError(err, "cloudasset.googleapis.com")
		if !gcpinternal.IsRetryable(lastErr) {
			return nil, lastErr
		}
		if err := gax.Sleep(ctx, backoff.Pause()); err != nil {
			return nil, err
		}
	}
	return nil, lastErr
}
