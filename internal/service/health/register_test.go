package health_test

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"

	"github.com/vidshare/fixture-seeder/internal/app"
	seedErr "github.com/vidshare/fixture-seeder/internal/errors"
	"github.com/vidshare/fixture-seeder/internal/seed"
	"github.com/vidshare/fixture-seeder/internal/server"
	"github.com/vidshare/fixture-seeder/internal/service/health"
	"github.com/vidshare/fixture-seeder/internal/testhelpers"
)

// setupClient serves the registrar over an in-memory listener.
func setupClient(t *testing.T, reg *health.Registrar) healthpb.HealthClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := server.NewGRPCServer(reg)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return healthpb.NewHealthClient(conn)
}

func check(t *testing.T, c healthpb.HealthClient) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	resp, err := c.Check(context.Background(), &healthpb.HealthCheckRequest{Service: health.FixturesService})
	require.NoError(t, err)
	return resp.GetStatus()
}

func TestFixturesStatus(t *testing.T) {
	reg := health.NewRegistrar(app.New(nil, nil, testhelpers.DiscardLogger()))
	client := setupClient(t, reg)

	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, check(t, client))

	reg.ReportSeed(&seed.Report{RunID: "r1"}, nil)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, check(t, client))

	reg.ReportSeed(nil, errors.Join(errors.New("create video 1"), seedErr.ErrForeignKey))
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, check(t, client))
}

func TestOverallStatusServing(t *testing.T) {
	client := setupClient(t, health.NewRegistrar(app.New(nil, nil, testhelpers.DiscardLogger())))

	resp, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}
