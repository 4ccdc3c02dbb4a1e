package errors

// ErrorCode represents a specific error code in the system.
type ErrorCode string

const (
	// GeneralInternalServerError represents a generic internal server error.
	GeneralInternalServerError ErrorCode = "general_internal_server_error"
	// GeneralBadRequestError represents a generic bad request error.
	GeneralBadRequestError ErrorCode = "general_bad_request_error"
	// GeneralNotFoundError represents a generic not found error.
	GeneralNotFoundError ErrorCode = "general_not_found_error"

	// OrderInvalidError represents a malformed order rejected before any book mutation.
	OrderInvalidError ErrorCode = "order_invalid_error"
	// OrderNotFoundError represents a cancel or modify referencing an unknown order id.
	OrderNotFoundError ErrorCode = "order_not_found_error"
	// NoLiquidityError represents a market order submitted against an empty opposite side.
	NoLiquidityError ErrorCode = "no_liquidity_error"
	// UnknownInstrumentError represents a request for an unregistered instrument.
	UnknownInstrumentError ErrorCode = "unknown_instrument_error"
	// DuplicateInstrumentError represents a registration of an already known instrument.
	DuplicateInstrumentError ErrorCode = "duplicate_instrument_error"

	// TradePublishError represents a failure to publish a trade event.
	TradePublishError ErrorCode = "trade_publish_error"
	// TradeRecordError represents a failure to record a trade tick.
	TradeRecordError ErrorCode = "trade_record_error"
	// DepthCacheError represents a failure to cache a book snapshot.
	DepthCacheError ErrorCode = "depth_cache_error"

	// RedisConfigError represents an invalid or nil Redis configuration.
	RedisConfigError ErrorCode = "redis_config_error"
	// RedisConnectionError represents a failure to connect to Redis.
	RedisConnectionError ErrorCode = "redis_connection_error"
	// RedisSetError represents a failure to set a value in Redis.
	RedisSetError ErrorCode = "redis_set_error"
	// RedisGetError represents a failure to get a value from Redis.
	RedisGetError ErrorCode = "redis_get_error"
	// RedisPublishError represents a failure to publish a message to Redis.
	RedisPublishError ErrorCode = "redis_publish_error"
)

// ErrorDetails represents detailed information about an error.
type ErrorDetails struct {
	// Message is the user-defined error message.
	Message string

	// Code is the user-defined error code string.
	Code string

	// Field is the related field the error occurred on, if any.
	Field string
}

// NewErrorDetails creates a new ErrorDetails struct with the given parameters.
func NewErrorDetails(message, code, field string) *ErrorDetails {
	return &ErrorDetails{
		Message: message,
		Code:    code,
		Field:   field,
	}
}

// Error implements the `error` interface.
func (e *ErrorDetails) Error() string {
	return e.Message
}

// ErrorCodeEquals checks whether a given `error` has a specific code.
func ErrorCodeEquals(err error, code string) bool {
	errDetails, ok := err.(*ErrorDetails)
	if !ok {
		return false
	}
	return errDetails.Code == code
}
