package auth

import (
	"crypto/tls"

	"github.com/golang/glog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/reflection"
)

// NewServerWithAuth creates a new gRPC server with authorization middleware.
// A nil tlsConfig creates an insecure server; a nil authorizer skips the
// interceptors.
func NewServerWithAuth(tlsConfig *tls.Config, authorizer Authorizer) *grpc.Server {
	var opts []grpc.ServerOption

	if tlsConfig != nil {
		opts = append(opts, grpc.Creds(credentials.NewTLS(tlsConfig)))
		glog.V(1).Info("Added TLS credentials to server")
	} else {
		glog.V(1).Info("Creating insecure server (no TLS config)")
	}

	if authorizer != nil {
		opts = append(opts,
			grpc.UnaryInterceptor(AuthMiddleware(authorizer)),
			grpc.StreamInterceptor(StreamAuthMiddleware(authorizer)),
		)
		glog.V(1).Info("Added authorization interceptors")
	}

	// nosemgrep: go.grpc.security.grpc-server-insecure-connection.grpc-server-insecure-connection
	server := grpc.NewServer(opts...)

	// Register reflection service for development tools
	reflection.Register(server)
	glog.V(2).Info("Registered gRPC reflection service")

	return server
}
