package gcpinternal

import (
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ------------------------------
// Common GCP API Error Types
// ------------------------------
var (
	ErrAPINotEnabled      = errors.New("API not enabled")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrNotFound           = errors.New("resource not found")
	ErrRateLimited        = errors.New("rate limited")
	ErrVPCServiceControls = errors.New("blocked by VPC Service Controls")
)

// ParseGCPError converts GCP API errors into standardized error types so call
// sites can classify failures with errors.Is. Handles both REST API errors
// (googleapi.Error) and gRPC errors (status.Error); anything unrecognized is
// returned as-is and treated as fatal by callers.
func ParseGCPError(err error, apiName string) error {
	if err == nil {
		return nil
	}

	// gRPC status errors (Cloud Asset and other gRPC-based APIs)
	if grpcStatus, ok := status.FromError(err); ok && grpcStatus.Code() != codes.OK {
		errStr := err.Error()

		switch grpcStatus.Code() {
		case codes.PermissionDenied:
			if strings.Contains(errStr, "SERVICE_DISABLED") {
				return fmt.Errorf("%w: %s", ErrAPINotEnabled, apiName)
			}
			if strings.Contains(errStr, "VPC_SERVICE_CONTROLS") ||
				strings.Contains(errStr, "SECURITY_POLICY_VIOLATED") {
				return ErrVPCServiceControls
			}
			return ErrPermissionDenied

		case codes.NotFound:
			return ErrNotFound

		case codes.Unauthenticated:
			return fmt.Errorf("authentication failed - check credentials")

		case codes.ResourceExhausted:
			return fmt.Errorf("%w: too many requests to %s", ErrRateLimited, apiName)

		case codes.Unavailable, codes.Internal:
			return fmt.Errorf("GCP service error: %s", grpcStatus.Message())

		case codes.InvalidArgument:
			return fmt.Errorf("bad request: %s", grpcStatus.Message())
		}

		return fmt.Errorf("gRPC error (%s): %s", grpcStatus.Code().String(), grpcStatus.Message())
	}

	// REST API errors (googleapi.Error)
	var googleErr *googleapi.Error
	if errors.As(err, &googleErr) {
		errStr := googleErr.Error()

		switch googleErr.Code {
		case 403:
			if strings.Contains(errStr, "SERVICE_DISABLED") {
				return fmt.Errorf("%w: %s", ErrAPINotEnabled, apiName)
			}
			if strings.Contains(errStr, "VPC_SERVICE_CONTROLS") ||
				strings.Contains(errStr, "SECURITY_POLICY_VIOLATED") ||
				strings.Contains(errStr, "organization's policy") {
				return ErrVPCServiceControls
			}
			return ErrPermissionDenied

		case 404:
			return ErrNotFound

		case 400:
			return fmt.Errorf("bad request: %s", googleErr.Message)

		case 429:
			return fmt.Errorf("%w: too many requests to %s", ErrRateLimited, apiName)

		case 500, 502, 503, 504:
			return fmt.Errorf("GCP service error (code %d)", googleErr.Code)
		}

		return fmt.Errorf("API error (code %d): %s", googleErr.Code, googleErr.Message)
	}

	// Fallback: string matching for errors that lost their type on the way up
	errStr := err.Error()
	if strings.Contains(errStr, "SERVICE_DISABLED") {
		return fmt.Errorf("%w: %s", ErrAPINotEnabled, apiName)
	}
	if strings.Contains(errStr, "PERMISSION_DENIED") || strings.Contains(errStr, "PermissionDenied") {
		return ErrPermissionDenied
	}

	return err
}

// IsPermissionDenied checks if an error is a permission denied error
func IsPermissionDenied(err error) bool {
	return errors.Is(err, ErrPermissionDenied)
}

// IsAPINotEnabled checks if an error is an API not enabled error
func IsAPINotEnabled(err error) bool {
	return errors.Is(err, ErrAPINotEnabled)
}

// IsRetryable reports whether a search call is worth retrying with backoff.
// Only rate limiting and transient service errors qualify; permission problems
// never do.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	if grpcStatus, ok := status.FromError(err); ok {
		switch grpcStatus.Code() {
		case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted:
			return true
		}
	}
	var googleErr *googleapi.Error
	if errors.As(err, &googleErr) {
		return googleErr.Code == 429 || googleErr.Code >= 500
	}
	return false
}
