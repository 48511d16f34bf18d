package grpc

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func TestServer_HealthCheck(t *testing.T) {
	s, err := NewServer(&Config{Port: 0, Logger: zap.NewNop()})
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	s.setStatus(true)

	go func() { _ = s.Start() }()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.Shutdown(ctx)
	})

	conn, err := grpc.NewClient(s.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatalf("grpc.NewClient() error = %v", err)
	}
	defer conn.Close()

	client := healthpb.NewHealthClient(conn)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tests := []struct {
		name    string
		healthy bool
		want    healthpb.HealthCheckResponse_ServingStatus
	}{
		{name: "serving", healthy: true, want: healthpb.HealthCheckResponse_SERVING},
		{name: "not serving", healthy: false, want: healthpb.HealthCheckResponse_NOT_SERVING},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.setStatus(tt.healthy)

			resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
			if err != nil {
				t.Fatalf("Check() error = %v", err)
			}
			if resp.GetStatus() != tt.want {
				t.Errorf("Check() status = %v, want %v", resp.GetStatus(), tt.want)
			}
		})
	}
}
