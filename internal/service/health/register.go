package health

import (
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"github.com/vidshare/fixture-seeder/internal/app"
	svcErr "github.com/vidshare/fixture-seeder/internal/errors"
	"github.com/vidshare/fixture-seeder/internal/seed"
)

// FixturesService is the health service name that tracks whether the
// database currently holds a complete fixture set.
const FixturesService = "fixtures"

// Registrar ties the standard gRPC health service into the server and
// exposes the outcome of the last reseed through it.
type Registrar struct {
	appCtx *app.AppContext
	srv    *health.Server
}

// NewRegistrar creates a Registrar. The fixtures service starts NOT_SERVING
// until a seed run succeeds.
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	srv := health.NewServer()
	srv.SetServingStatus(FixturesService, healthpb.HealthCheckResponse_NOT_SERVING)
	return &Registrar{appCtx: appCtx, srv: srv}
}

// Register attaches the health service implementation to the gRPC server
func (r *Registrar) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, r.srv)
}

// ReportSeed records the result of a reseed.
func (r *Registrar) ReportSeed(report *seed.Report, err error) {
	if err != nil {
		r.appCtx.Logger.Error("fixtures unavailable",
			"code", status.Code(svcErr.Map(err)).String(),
			"class", svcErr.Classify(err),
			"err", err,
		)
		r.srv.SetServingStatus(FixturesService, healthpb.HealthCheckResponse_NOT_SERVING)
		return
	}
	r.appCtx.Logger.Info("fixtures ready", "run_id", report.RunID)
	r.srv.SetServingStatus(FixturesService, healthpb.HealthCheckResponse_SERVING)
}

// Shutdown flips every service to NOT_SERVING.
func (r *Registrar) Shutdown() { r.srv.Shutdown() }
