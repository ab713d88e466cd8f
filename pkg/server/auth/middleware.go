package auth

import (
	"context"
	"strings"

	"github.com/golang/glog"
	"google.golang.org/grpc"
)

// AuthMiddleware creates a gRPC unary interceptor for authorization.
func AuthMiddleware(auth Authorizer) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler) (interface{}, error) {
		service, writeAccess := parseMethod(info.FullMethod)

		// Skip authorization for system services (empty service name)
		if service == "" {
			glog.V(3).Infof("Skipping authorization for method %s", info.FullMethod)
			return handler(ctx, req)
		}

		glog.V(2).Infof("Authorization check for method %s -> service=%s, writeAccess=%t",
			info.FullMethod, service, writeAccess)

		if err := auth.CheckAccess(ctx, service, writeAccess); err != nil {
			glog.V(1).Infof("Authorization denied for method %s: %v", info.FullMethod, err)
			return nil, err
		}

		return handler(ctx, req)
	}
}

// StreamAuthMiddleware creates a gRPC stream interceptor for authorization.
func StreamAuthMiddleware(auth Authorizer) grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo,
		handler grpc.StreamHandler) error {
		service, writeAccess := parseMethod(info.FullMethod)

		if service == "" {
			glog.V(3).Infof("Skipping stream authorization for method %s", info.FullMethod)
			return handler(srv, ss)
		}

		glog.V(2).Infof("Stream authorization check for method %s -> service=%s, writeAccess=%t",
			info.FullMethod, service, writeAccess)

		if err := auth.CheckAccess(ss.Context(), service, writeAccess); err != nil {
			glog.V(1).Infof("Stream authorization denied for method %s: %v", info.FullMethod, err)
			return err
		}

		return handler(srv, ss)
	}
}

// gnmiMethods maps gNMI methods to write access requirement.
var gnmiMethods = map[string]bool{
	"Set":          true,  // write
	"Get":          false, // read
	"Capabilities": false, // read
	"Subscribe":    false, // read
}

// parseMethod extracts service name and write access requirement from gRPC method name.
func parseMethod(fullMethod string) (service string, writeAccess bool) {
	// Skip authorization for gRPC reflection and health check services
	if strings.Contains(fullMethod, "grpc.reflection") ||
		strings.Contains(fullMethod, "grpc.health") {
		return "", false
	}

	// Format: /package.ServiceName/MethodName
	parts := strings.Split(fullMethod, "/")
	if len(parts) < 3 {
		glog.V(2).Infof("Invalid method format: %s", fullMethod)
		return "unknown", false
	}

	grpcServiceName, methodName := parts[1], parts[2]

	if grpcServiceName == "gnmi.gNMI" {
		if writeAccess, exists := gnmiMethods[methodName]; exists {
			return "gnmi", writeAccess
		}

		// Unknown gNMI method - default to read access
		glog.V(2).Infof("Unknown gNMI method %s, defaulting to read", methodName)
		return "gnmi", false
	}

	glog.V(2).Infof("Unknown service for method %s", fullMethod)
	return "unknown", false
}
