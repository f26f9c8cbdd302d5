package grpc

import (
	"bytes"
	"context"
	"net"
	"testing"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/MKhiriev/lockbox/internal/logger"
)

func startTestServer(t *testing.T, h *Handler) healthpb.HealthClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	server := h.Init()
	go func() { _ = server.Serve(lis) }()
	t.Cleanup(server.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return healthpb.NewHealthClient(conn)
}

func TestHealth_Serving(t *testing.T) {
	client := startTestServer(t, NewHandler(nil, logger.Nop()))

	for _, name := range []string{"", ServiceName} {
		resp, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: name})
		require.NoError(t, err)
		assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus(), name)
	}
}

func TestHealth_UnknownService(t *testing.T) {
	client := startTestServer(t, NewHandler(nil, logger.Nop()))

	_, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: "nope"})

	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestHealth_NotServingAfterShutdown(t *testing.T) {
	h := NewHandler(nil, logger.Nop())
	client := startTestServer(t, h)

	h.Shutdown()

	resp, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.GetStatus())
}

func TestRecoverPanic_HidesValue(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(nil, logger.New(&buf, "test", zerolog.DebugLevel))

	err := h.recoverPanic(context.Background(), "boom with secret")

	assert.Equal(t, codes.Internal, status.Code(err))
	assert.NotContains(t, err.Error(), "secret")
	assert.Contains(t, buf.String(), "boom with secret")
}

func TestInterceptorLogger_WritesFields(t *testing.T) {
	var buf bytes.Buffer
	l := interceptorLogger(logger.New(&buf, "test", zerolog.DebugLevel))

	l.Log(context.Background(), logging.LevelInfo, "finished call", "grpc.method", "Check")

	assert.Contains(t, buf.String(), `"grpc.method":"Check"`)
	assert.Contains(t, buf.String(), "finished call")
}
