// Command concat-server serves string concatenation over gNMI.
package main

import (
	"crypto/tls"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/golang/glog"
	gnmipb "github.com/openconfig/gnmi/proto/gnmi"

	"github.com/sonic-net/sonic-gnmi/concat-standalone/pkg/server/auth"
	"github.com/sonic-net/sonic-gnmi/concat-standalone/pkg/server/gnmi"
)

var (
	addr     = flag.String("addr", ":50055", "address to listen on")
	tlsCert  = flag.String("tls_cert", "", "TLS certificate file (insecure when empty)")
	tlsKey   = flag.String("tls_key", "", "TLS private key file")
	readOnly = flag.Bool("read_only", true, "deny gNMI write RPCs")
)

func main() {
	flag.Parse()
	defer glog.Flush()

	if err := run(); err != nil {
		glog.Errorf("concat-server: %v", err)
		glog.Flush()
		os.Exit(1)
	}
}

func run() error {
	tlsConfig, err := loadTLSConfig(*tlsCert, *tlsKey)
	if err != nil {
		return err
	}

	var authorizer auth.Authorizer = auth.AllowAllAuthorizer{}
	if *readOnly {
		authorizer = auth.NewReadOnlyAuthorizer()
	}

	server := auth.NewServerWithAuth(tlsConfig, authorizer)
	gnmipb.RegisterGNMIServer(server, gnmi.NewServer())

	lis, err := net.Listen("tcp", *addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", *addr, err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		glog.Infof("Received %v, shutting down", sig)
		server.GracefulStop()
	}()

	glog.Infof("gNMI concat server listening on %s (read_only=%t)", lis.Addr(), *readOnly)
	if err := server.Serve(lis); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func loadTLSConfig(certFile, keyFile string) (*tls.Config, error) {
	if certFile == "" && keyFile == "" {
		return nil, nil
	}
	if certFile == "" || keyFile == "" {
		return nil, fmt.Errorf("both -tls_cert and -tls_key are required for TLS")
	}

	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load TLS key pair: %w", err)
	}
	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}, nil
}
