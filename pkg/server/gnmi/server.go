// Package gnmi exposes string concatenation over the gNMI Get RPC.
//
// A request path of the form
//
//	/concat[first=<a>][second=<b>]
//
// returns a single update whose string value is a followed by b. An optional
// [sep=<s>] key places s between the two values. Set and Subscribe are not
// supported.
package gnmi

import (
	"context"
	"time"

	"github.com/golang/glog"
	gnmipb "github.com/openconfig/gnmi/proto/gnmi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/sonic-net/sonic-gnmi/concat-standalone/pkg/concat"
)

const (
	// Version is the gNMI protocol version reported by Capabilities.
	Version = "0.10.0"

	concatElem = "concat"
	firstKey   = "first"
	secondKey  = "second"
	sepKey     = "sep"
)

// Server implements the gNMI service for concatenation requests.
type Server struct {
	gnmipb.UnimplementedGNMIServer

	// now is swapped in tests to get stable timestamps.
	now func() time.Time
}

// NewServer creates a new gNMI concatenation server.
func NewServer() *Server {
	return &Server{now: time.Now}
}

// Capabilities reports the supported encodings and protocol version.
func (s *Server) Capabilities(ctx context.Context, req *gnmipb.CapabilityRequest) (*gnmipb.CapabilityResponse, error) {
	glog.V(2).Info("Capabilities request received")
	return &gnmipb.CapabilityResponse{
		SupportedEncodings: []gnmipb.Encoding{gnmipb.Encoding_JSON, gnmipb.Encoding_ASCII},
		GNMIVersion:        Version,
	}, nil
}

// Get answers every requested path with one notification carrying the
// concatenated value.
func (s *Server) Get(ctx context.Context, req *gnmipb.GetRequest) (*gnmipb.GetResponse, error) {
	if len(req.GetPath()) == 0 {
		return nil, status.Error(codes.InvalidArgument, "no paths requested")
	}

	glog.V(2).Infof("Get request with %d path(s)", len(req.GetPath()))

	notifications := make([]*gnmipb.Notification, 0, len(req.GetPath()))
	for _, path := range req.GetPath() {
		val, err := resolve(req.GetPrefix(), path)
		if err != nil {
			glog.V(1).Infof("Get failed for path %v: %v", path, err)
			return nil, err
		}

		notifications = append(notifications, &gnmipb.Notification{
			Timestamp: s.now().UnixNano(),
			Prefix:    req.GetPrefix(),
			Update: []*gnmipb.Update{{
				Path: path,
				Val:  &gnmipb.TypedValue{Value: &gnmipb.TypedValue_StringVal{StringVal: val}},
			}},
		})
	}

	return &gnmipb.GetResponse{Notification: notifications}, nil
}

// resolve evaluates prefix+path and returns the concatenated value.
func resolve(prefix, path *gnmipb.Path) (string, error) {
	elems := make([]*gnmipb.PathElem, 0, len(prefix.GetElem())+len(path.GetElem()))
	elems = append(elems, prefix.GetElem()...)
	elems = append(elems, path.GetElem()...)

	if len(elems) != 1 || elems[0].GetName() != concatElem {
		return "", status.Errorf(codes.NotFound, "unsupported path %s", pathString(elems))
	}

	keys := elems[0].GetKey()
	first, ok := keys[firstKey]
	if !ok {
		return "", status.Errorf(codes.InvalidArgument, "missing %q key", firstKey)
	}
	second, ok := keys[secondKey]
	if !ok {
		return "", status.Errorf(codes.InvalidArgument, "missing %q key", secondKey)
	}

	if sep, ok := keys[sepKey]; ok {
		return concat.ConcatenateWith(first, sep, second), nil
	}
	return concat.Concatenate(first, second), nil
}

func pathString(elems []*gnmipb.PathElem) string {
	if len(elems) == 0 {
		return "/"
	}
	parts := make([]string, 0, 2*len(elems))
	for _, e := range elems {
		parts = append(parts, "/", e.GetName())
	}
	return concat.ConcatenateAll(parts...)
}
