package gcpinternal

import (
	"errors"
	"testing"

	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestParseGCPErrorGRPC(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			"permission denied",
			status.Error(codes.PermissionDenied, "caller lacks permission"),
			ErrPermissionDenied,
		},
		{
			"service disabled",
			status.Error(codes.PermissionDenied, "SERVICE_DISABLED: enable the API"),
			ErrAPINotEnabled,
		},
		{
			"vpc service controls",
			status.Error(codes.PermissionDenied, "VPC_SERVICE_CONTROLS perimeter violation"),
			ErrVPCServiceControls,
		},
		{
			"not found",
			status.Error(codes.NotFound, "no such resource"),
			ErrNotFound,
		},
		{
			"rate limited",
			status.Error(codes.ResourceExhausted, "quota exceeded"),
			ErrRateLimited,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseGCPError(tt.err, "cloudasset.googleapis.com")
			if !errors.Is(got, tt.want) {
				t.Errorf("ParseGCPError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseGCPErrorREST(t *testing.T) {
	tests := []struct {
		name string
		code int
		body string
		want error
	}{
		{"forbidden", 403, "access denied", ErrPermissionDenied},
		{"service disabled", 403, "SERVICE_DISABLED", ErrAPINotEnabled},
		{"not found", 404, "missing", ErrNotFound},
		{"too many requests", 429, "slow down", ErrRateLimited},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &googleapi.Error{Code: tt.code, Message: tt.body, Body: tt.body}
			got := ParseGCPError(err, "serviceusage.googleapis.com")
			if !errors.Is(got, tt.want) {
				t.Errorf("ParseGCPError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseGCPErrorPassthrough(t *testing.T) {
	if got := ParseGCPError(nil, "x"); got != nil {
		t.Errorf("nil in, nil out; got %v", got)
	}

	plain := errors.New("something else entirely")
	if got := ParseGCPError(plain, "x"); !errors.Is(got, plain) {
		t.Errorf("unrecognized errors must pass through, got %v", got)
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"permission denied", ErrPermissionDenied, false},
		{"rate limited sentinel", ErrRateLimited, true},
		{"grpc unavailable", status.Error(codes.Unavailable, "try later"), true},
		{"grpc deadline", status.Error(codes.DeadlineExceeded, "too slow"), true},
		{"rest 500", &googleapi.Error{Code: 500}, true},
		{"rest 429", &googleapi.Error{Code: 429}, true},
		{"rest 400", &googleapi.Error{Code: 400}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
