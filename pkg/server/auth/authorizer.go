// Package auth provides simple authorization for gRPC services.
package auth

import (
	"context"

	"github.com/golang/glog"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Authorizer defines the interface for checking access permissions.
type Authorizer interface {
	CheckAccess(ctx context.Context, service string, writeAccess bool) error
}

// ReadOnlyAuthorizer grants read access to every service and denies writes.
type ReadOnlyAuthorizer struct{}

// NewReadOnlyAuthorizer creates a new read-only authorizer.
func NewReadOnlyAuthorizer() *ReadOnlyAuthorizer {
	return &ReadOnlyAuthorizer{}
}

// CheckAccess verifies that the request does not need write access.
func (a *ReadOnlyAuthorizer) CheckAccess(ctx context.Context, service string, writeAccess bool) error {
	if writeAccess {
		glog.V(1).Infof("Write access denied for service %s (read-only server)", service)
		return status.Error(codes.PermissionDenied, "server is read-only")
	}

	glog.V(2).Infof("Read access granted for service %s", service)
	return nil
}

// AllowAllAuthorizer grants every request. Used when the server runs with
// read-only mode disabled.
type AllowAllAuthorizer struct{}

// CheckAccess always succeeds.
func (AllowAllAuthorizer) CheckAccess(ctx context.Context, service string, writeAccess bool) error {
	glog.V(3).Infof("Access granted for service %s (write=%t)", service, writeAccess)
	return nil
}
