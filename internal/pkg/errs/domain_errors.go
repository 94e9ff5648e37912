package errs

// Sentinels shared by the command and query usecases. Handlers map these to HTTP statuses.
var (
	// Access errors
	ErrForbidden = New("forbidden")

	// Vehicle errors
	ErrVehicleNotFound    = New("vehicle not found")
	ErrVehicleUnavailable = New("vehicle is not available for rental")
	ErrVehicleBusy        = New("vehicle is being booked by another request")

	// Reservation errors
	ErrReservationNotFound = New("reservation not found")
	ErrDatesUnavailable    = New("vehicle is not available for the selected dates")
	ErrInvalidDateRange    = New("invalid date range")
	ErrInvalidTransition   = New("invalid reservation status transition")
	ErrInvalidStatus       = New("invalid reservation status")

	// Idempotency errors
	ErrIdempotencyKeyRequired = New("idempotency key required")
	ErrIdempotencyInProgress  = New("idempotency in progress")
	ErrIdempotencyKeyReused   = New("idempotency key reused with different request")
	ErrIdempotencyCheckFailed = New("idempotency check failed")

	// Validation errors
	ErrDomainValidation = New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = New("database operation failed")
)
