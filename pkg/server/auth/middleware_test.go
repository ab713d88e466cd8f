package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestParseMethod(t *testing.T) {
	tests := []struct {
		name        string
		fullMethod  string
		wantService string
		wantWrite   bool
	}{
		{"gNMI write", "/gnmi.gNMI/Set", "gnmi", true},
		{"gNMI read", "/gnmi.gNMI/Get", "gnmi", false},
		{"gNMI capabilities", "/gnmi.gNMI/Capabilities", "gnmi", false},
		{"gNMI subscribe", "/gnmi.gNMI/Subscribe", "gnmi", false},
		{"unknown gNMI method", "/gnmi.gNMI/Frobnicate", "gnmi", false},
		{"skip reflection", "/grpc.reflection.v1alpha.ServerReflection/ServerReflectionInfo", "", false},
		{"skip health", "/grpc.health.v1.Health/Check", "", false},
		{"unknown service", "/unknown.service/Method", "unknown", false},
		{"invalid format", "/invalid", "unknown", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, writeAccess := parseMethod(tt.fullMethod)
			if service != tt.wantService {
				t.Errorf("service = %v, want %v", service, tt.wantService)
			}
			if writeAccess != tt.wantWrite {
				t.Errorf("writeAccess = %v, want %v", writeAccess, tt.wantWrite)
			}
		})
	}
}

func TestReadOnlyAuthorizer(t *testing.T) {
	a := NewReadOnlyAuthorizer()

	assert.NoError(t, a.CheckAccess(context.Background(), "gnmi", false))

	err := a.CheckAccess(context.Background(), "gnmi", true)
	require.Error(t, err)
	assert.Equal(t, codes.PermissionDenied, status.Code(err))
}

func TestAllowAllAuthorizer(t *testing.T) {
	var a AllowAllAuthorizer
	assert.NoError(t, a.CheckAccess(context.Background(), "gnmi", true))
	assert.NoError(t, a.CheckAccess(context.Background(), "gnmi", false))
}

func TestAuthMiddleware(t *testing.T) {
	interceptor := AuthMiddleware(NewReadOnlyAuthorizer())

	called := false
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		called = true
		return "ok", nil
	}

	t.Run("read passes through", func(t *testing.T) {
		called = false
		resp, err := interceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/gnmi.gNMI/Get"}, handler)
		require.NoError(t, err)
		assert.Equal(t, "ok", resp)
		assert.True(t, called)
	})

	t.Run("write is denied", func(t *testing.T) {
		called = false
		resp, err := interceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/gnmi.gNMI/Set"}, handler)
		require.Error(t, err)
		assert.Nil(t, resp)
		assert.False(t, called)
		assert.Equal(t, codes.PermissionDenied, status.Code(err))
	})

	t.Run("system service skips authorization", func(t *testing.T) {
		called = false
		deny := AuthMiddleware(denyAll{})
		_, err := deny(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}, handler)
		require.NoError(t, err)
		assert.True(t, called)
	})
}

func TestStreamAuthMiddleware(t *testing.T) {
	interceptor := StreamAuthMiddleware(NewReadOnlyAuthorizer())
	ss := &fakeServerStream{ctx: context.Background()}

	called := false
	handler := func(srv interface{}, stream grpc.ServerStream) error {
		called = true
		return nil
	}

	err := interceptor(nil, ss, &grpc.StreamServerInfo{FullMethod: "/gnmi.gNMI/Subscribe"}, handler)
	require.NoError(t, err)
	assert.True(t, called)

	called = false
	err = StreamAuthMiddleware(denyAll{})(nil, ss, &grpc.StreamServerInfo{FullMethod: "/gnmi.gNMI/Subscribe"}, handler)
	require.Error(t, err)
	assert.False(t, called)
}

func TestNewServerWithAuth(t *testing.T) {
	server := NewServerWithAuth(nil, NewReadOnlyAuthorizer())
	require.NotNil(t, server)
	defer server.Stop()

	_, ok := server.GetServiceInfo()["grpc.reflection.v1.ServerReflection"]
	assert.True(t, ok, "reflection service should be registered")
}

type denyAll struct{}

func (denyAll) CheckAccess(ctx context.Context, service string, writeAccess bool) error {
	return status.Error(codes.PermissionDenied, "denied")
}

type fakeServerStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (f *fakeServerStream) Context() context.Context { return f.ctx }
