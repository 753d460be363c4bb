package grpc

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"slotwise/backend/internal/service/booking"
	"slotwise/backend/internal/service/catalog"
	"slotwise/backend/internal/store"
)

const (
	msgSlotConflict        = "That time slot is no longer available. Pick a different slot."
	msgIdempotencyConflict = "This request key was already used for a different appointment. Try again."
)

// statusError maps a service error to a gRPC status and logs it at a level
// matching its cause. notFound is the message returned for store.ErrNotFound.
func statusError(log *slog.Logger, op, notFound string, err error, attrs ...any) error {
	var (
		bookingErr *booking.ValidationError
		catalogErr *catalog.ValidationError
	)
	switch {
	case errors.Is(err, store.ErrSlotConflict):
		log.Info(op+" conflict", attrs...)
		return status.Error(codes.FailedPrecondition, msgSlotConflict)
	case errors.Is(err, store.ErrIdempotencyConflict):
		log.Info(op+" idempotency conflict", attrs...)
		return status.Error(codes.FailedPrecondition, msgIdempotencyConflict)
	case errors.Is(err, store.ErrNotFound):
		log.Info(op+" not found", attrs...)
		return status.Error(codes.NotFound, notFound)
	case errors.As(err, &bookingErr):
		log.Warn("invalid request", append(attrs, slog.Any("err", err))...)
		return status.Error(codes.InvalidArgument, bookingErr.Error())
	case errors.As(err, &catalogErr):
		log.Warn("invalid request", append(attrs, slog.Any("err", err))...)
		return status.Error(codes.InvalidArgument, catalogErr.Error())
	case errors.Is(err, context.DeadlineExceeded):
		log.Warn(op+" timed out", append(attrs, slog.Any("err", err))...)
		return status.Error(codes.DeadlineExceeded, "deadline exceeded")
	case errors.Is(err, context.Canceled):
		log.Info(op+" canceled", attrs...)
		return status.Error(codes.Canceled, "request canceled")
	}
	log.Error(op+" failed", append(attrs, slog.Any("err", err))...)
	return status.Error(codes.Internal, "internal error")
}

func invalidArgument(log *slog.Logger, reason, msg string, attrs ...any) error {
	log.Warn("invalid request", append([]any{slog.String("reason", reason)}, attrs...)...)
	return status.Error(codes.InvalidArgument, msg)
}

func idempotencyKey(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	values := md.Get("idempotency-key")
	if len(values) == 0 {
		values = md.Get("x-idempotency-key")
	}
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0])
}
