package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeUnauthorized       ErrorCode = "COMMON_003"
	ErrCodeForbidden          ErrorCode = "COMMON_004"
	ErrCodeNotFound           ErrorCode = "COMMON_005"
	ErrCodeConflict           ErrorCode = "COMMON_006"
	ErrCodeTooManyRequests    ErrorCode = "COMMON_007"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_008"
	ErrCodeTimeout            ErrorCode = "COMMON_009"
	ErrCodeValidation         ErrorCode = "COMMON_010"
	ErrCodeSerialization      ErrorCode = "COMMON_011"
	ErrCodeDatabaseError      ErrorCode = "COMMON_012"
	ErrCodeCacheError         ErrorCode = "COMMON_013"
	ErrCodeExternalService    ErrorCode = "COMMON_014"
	ErrCodeStorageError       ErrorCode = "COMMON_015"
	ErrCodeUnknown            ErrorCode = "COMMON_016"

	CodeOK ErrorCode = "OK"
)

// Claim module error codes
const (
	ErrCodeClaimNotFound        ErrorCode = "CLM_001"
	ErrCodeClaimInvalidSection  ErrorCode = "CLM_002"
	ErrCodeClaimEmptyAllegation ErrorCode = "CLM_003"
	ErrCodeClaimInvalidType     ErrorCode = "CLM_004"
	ErrCodeClaimInvalidFramework ErrorCode = "CLM_005"
)

// Evidence module error codes
const (
	ErrCodeRequirementNotFound  ErrorCode = "EVD_001"
	ErrCodeLinkNotFound         ErrorCode = "EVD_002"
	ErrCodeLinkInvalidType      ErrorCode = "EVD_003"
	ErrCodeLinkAmbiguousArtifact ErrorCode = "EVD_004"
	ErrCodeFulfillmentNotFound  ErrorCode = "EVD_005"
)

// Correlation module error codes
const (
	ErrCodeAnalysisFailed    ErrorCode = "COR_001"
	ErrCodeTreeBuildFailed   ErrorCode = "COR_002"
	ErrCodeDerivationFailed  ErrorCode = "COR_003"
)

// Document / storage error codes
const (
	ErrCodeDocumentNotFound     ErrorCode = "DOC_001"
	ErrCodeDocumentUploadFailed ErrorCode = "DOC_002"
	ErrCodeDocumentTooLarge     ErrorCode = "DOC_003"
)

// AI extraction error codes
const (
	ErrCodeExtractionUnavailable ErrorCode = "AI_001"
	ErrCodeExtractionFailed      ErrorCode = "AI_002"
	ErrCodeExtractionBadPayload  ErrorCode = "AI_003"
)

// errorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var errorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeTooManyRequests:    http.StatusTooManyRequests,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeDatabaseError:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,
	ErrCodeExternalService:    http.StatusBadGateway,
	ErrCodeStorageError:       http.StatusInternalServerError,
	ErrCodeUnknown:            http.StatusInternalServerError,

	ErrCodeClaimNotFound:         http.StatusNotFound,
	ErrCodeClaimInvalidSection:   http.StatusBadRequest,
	ErrCodeClaimEmptyAllegation:  http.StatusBadRequest,
	ErrCodeClaimInvalidType:      http.StatusBadRequest,
	ErrCodeClaimInvalidFramework: http.StatusBadRequest,

	ErrCodeRequirementNotFound:   http.StatusNotFound,
	ErrCodeLinkNotFound:          http.StatusNotFound,
	ErrCodeLinkInvalidType:       http.StatusBadRequest,
	ErrCodeLinkAmbiguousArtifact: http.StatusBadRequest,
	ErrCodeFulfillmentNotFound:   http.StatusNotFound,

	ErrCodeAnalysisFailed:   http.StatusInternalServerError,
	ErrCodeTreeBuildFailed:  http.StatusInternalServerError,
	ErrCodeDerivationFailed: http.StatusInternalServerError,

	ErrCodeDocumentNotFound:     http.StatusNotFound,
	ErrCodeDocumentUploadFailed: http.StatusInternalServerError,
	ErrCodeDocumentTooLarge:     http.StatusRequestEntityTooLarge,

	ErrCodeExtractionUnavailable: http.StatusServiceUnavailable,
	ErrCodeExtractionFailed:      http.StatusBadGateway,
	ErrCodeExtractionBadPayload:  http.StatusBadGateway,
}

// errorCodeMessage maps ErrorCodes to default messages.
var errorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal server error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeUnauthorized:       "unauthorized",
	ErrCodeForbidden:          "forbidden",
	ErrCodeNotFound:           "resource not found",
	ErrCodeConflict:           "resource conflict",
	ErrCodeTooManyRequests:    "too many requests",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeTimeout:            "request timeout",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeDatabaseError:      "database error",
	ErrCodeCacheError:         "cache error",
	ErrCodeExternalService:    "external service error",
	ErrCodeStorageError:       "object storage error",
	ErrCodeUnknown:            "unknown error",

	ErrCodeClaimNotFound:         "claim not found",
	ErrCodeClaimInvalidSection:   "legal section must not be empty",
	ErrCodeClaimEmptyAllegation:  "allegation text must not be empty",
	ErrCodeClaimInvalidType:      "invalid claim type",
	ErrCodeClaimInvalidFramework: "invalid legal framework",

	ErrCodeRequirementNotFound:   "evidence requirement not found",
	ErrCodeLinkNotFound:          "claim-evidence link not found",
	ErrCodeLinkInvalidType:       "invalid link type",
	ErrCodeLinkAmbiguousArtifact: "link must reference at most one evidence artifact",
	ErrCodeFulfillmentNotFound:   "requirement fulfillment not found",

	ErrCodeAnalysisFailed:   "correlation analysis failed",
	ErrCodeTreeBuildFailed:  "exhibit tree construction failed",
	ErrCodeDerivationFailed: "claim status derivation failed",

	ErrCodeDocumentNotFound:     "evidence document not found",
	ErrCodeDocumentUploadFailed: "failed to store evidence document",
	ErrCodeDocumentTooLarge:     "evidence document exceeds size limit",

	ErrCodeExtractionUnavailable: "extraction service not available",
	ErrCodeExtractionFailed:      "extraction request failed",
	ErrCodeExtractionBadPayload:  "extraction service returned malformed payload",
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := errorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError returns true if the ErrorCode corresponds to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError returns true if the ErrorCode corresponds to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}
