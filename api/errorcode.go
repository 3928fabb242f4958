package api

import "github.com/clinsync/triage-api/store"

var (
	errorMessageMap = map[int64]string{
		999:  "internal server error",
		1000: "invalid username or credential",
		1001: "invalid authorization format",
		1003: "invalid token",
		1004: "account is not approved or has been deactivated",
		1005: "administrator role required",

		1010: "invalid parameters",
		1011: "cannot parse request",

		1100: store.ErrUsernameTaken.Error(),
		1101: store.ErrAccountNotFound.Error(),

		1200: "invalid subject attributes",
		1201: "remote write failed, local state kept",
		1202: "snapshot fetch failed, data may be stale",
		1203: "advisory service unavailable",
		1204: "malformed import payload",
		1205: "unknown case",
	}

	errorInternalServer             = errorJSON(999)
	errorInvalidCredentials         = errorJSON(1000)
	errorInvalidAuthorizationFormat = errorJSON(1001)
	errorInvalidToken               = errorJSON(1003)
	errorAccountNotUsable           = errorJSON(1004)
	errorAdminRequired              = errorJSON(1005)

	errorInvalidParameters  = errorJSON(1010)
	errorCannotParseRequest = errorJSON(1011)

	errorAccountTaken    = errorJSON(1100)
	errorAccountNotFound = errorJSON(1101)

	errorValidation      = errorJSON(1200)
	errorSyncWrite       = errorJSON(1201)
	errorSyncFetch       = errorJSON(1202)
	errorAdvisoryService = errorJSON(1203)
	errorImportFormat    = errorJSON(1204)
	errorUnknownCase     = errorJSON(1205)
)

type ErrorResponse struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
}

// errorJSON converts an error code to a standardized error object
func errorJSON(code int64) ErrorResponse {
	var message string
	if msg, ok := errorMessageMap[code]; ok {
		message = msg
	} else {
		message = "unknown"
	}

	return ErrorResponse{
		Code:    code,
		Message: message,
	}
}
