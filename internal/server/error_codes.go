package server

const (
	// Validation (1xxx)
	ErrCodeInvalidArgument = 1000
	ErrCodeInvalidJSON     = 1001
	ErrCodeRequestTooLarge = 1002
	ErrCodeInvalidQuery    = 1003
	ErrCodeInvalidID       = 1004
	ErrCodeInvalidFormat   = 1005
	ErrCodeInvalidYAML     = 1006
	ErrCodeMissingRequired = 1007

	// Domain state (2xxx)
	ErrCodeRecordNotFound = 2001
	ErrCodeAssetNotFound  = 2002

	// Limits (3xxx)
	ErrCodeResourceExhausted = 3001
	ErrCodeConfirmRequired   = 3002

	// Internal/system (4xxx)
	ErrCodeInternal         = 4001
	ErrCodeStoreFailure     = 4002
	ErrCodeGenerationFailed = 4003
)

func defaultErrorCodeByStatus(status int) int {
	switch status {
	case 400:
		return ErrCodeInvalidArgument
	case 404:
		return ErrCodeRecordNotFound
	case 429:
		return ErrCodeResourceExhausted
	case 500:
		return ErrCodeInternal
	case 502:
		return ErrCodeGenerationFailed
	default:
		return 0
	}
}
