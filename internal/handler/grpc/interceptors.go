package grpc

import (
	"context"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/MKhiriev/lockbox/internal/logger"
)

// interceptorLogger adapts the application logger to the go-grpc-middleware
// logging interface.
func interceptorLogger(l *logger.Logger) logging.Logger {
	return logging.LoggerFunc(func(ctx context.Context, lvl logging.Level, msg string, fields ...any) {
		var level zerolog.Level
		switch lvl {
		case logging.LevelDebug:
			level = zerolog.DebugLevel
		case logging.LevelInfo:
			level = zerolog.InfoLevel
		case logging.LevelWarn:
			level = zerolog.WarnLevel
		case logging.LevelError:
			level = zerolog.ErrorLevel
		default:
			level = zerolog.InfoLevel
		}
		l.WithLevel(level).Fields(fields).Msg(msg)
	})
}

// recoverPanic turns a handler panic into codes.Internal. The panic value is
// logged but never sent to the caller.
func (h *Handler) recoverPanic(ctx context.Context, p any) error {
	h.logger.Error().Str("panic", fmt.Sprint(p)).Msg("recovered from panic in gRPC handler")
	return status.Error(codes.Internal, "internal server error")
}

func (h *Handler) unaryInterceptors() []grpc.UnaryServerInterceptor {
	return []grpc.UnaryServerInterceptor{
		logging.UnaryServerInterceptor(interceptorLogger(h.logger), logging.WithLogOnEvents(logging.FinishCall)),
		recovery.UnaryServerInterceptor(recovery.WithRecoveryHandlerContext(h.recoverPanic)),
	}
}

func (h *Handler) streamInterceptors() []grpc.StreamServerInterceptor {
	return []grpc.StreamServerInterceptor{
		logging.StreamServerInterceptor(interceptorLogger(h.logger), logging.WithLogOnEvents(logging.FinishCall)),
		recovery.StreamServerInterceptor(recovery.WithRecoveryHandlerContext(h.recoverPanic)),
	}
}
