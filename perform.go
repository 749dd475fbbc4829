package msgtmpl

import "context"

// PerformSafe runs fn and returns its result. If fn fails, the failure is
// logged at error level through logger.WithContext(ctx) and defaultValue is
// returned instead.
//
// The logged template is messageTemplate followed by " with error {error}",
// with the error appended to args so it binds to {error}:
//
//	orders := msgtmpl.PerformSafe(ctx, log, fetchOrders, nil,
//		"Failed to fetch orders for {customerId}", customerID)
func PerformSafe[T any](
	ctx context.Context,
	logger *Logger,
	fn func(context.Context) (T, error),
	defaultValue T,
	messageTemplate string,
	args ...any,
) T {
	result, err := fn(ctx)
	if err == nil {
		return result
	}

	logArgs := make([]any, 0, len(args)+1)
	logArgs = append(logArgs, args...)
	logArgs = append(logArgs, err)
	logger.WithContext(ctx).Error(messageTemplate+" with error {error}", logArgs...)
	return defaultValue
}
