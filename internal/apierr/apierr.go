// Package apierr defines the control plane's typed error taxonomy and the
// {"type":"success"|"error","data":...} response envelope every HTTP
// response is wrapped in.
package apierr

import "net/http"

// Envelope is the literal wire shape of every JSON response the API sends.
type Envelope struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Success wraps data in a success envelope.
func Success(data interface{}) Envelope {
	return Envelope{Type: "success", Data: data}
}

// Error wraps a message in an error envelope.
func Error(message string) Envelope {
	return Envelope{Type: "error", Data: message}
}

// StatusError is an error carrying the HTTP status code it should be
// reported under.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string { return e.Message }

// StatusCode satisfies the status-classification contract the error
// middleware dispatches on.
func (e *StatusError) StatusCode() int { return e.Status }

func newErr(status int, message string) *StatusError {
	return &StatusError{Status: status, Message: message}
}

// Constructors for every error class spec'd for the control plane.

func InvalidName() *StatusError {
	return newErr(http.StatusBadRequest, "name must be 1..128 unicode characters")
}

func InvalidPort() *StatusError {
	return newErr(http.StatusBadRequest, "port must be between 1024 and 65535")
}

func PortAlreadyAllocated() *StatusError {
	return newErr(http.StatusBadRequest, "port is already allocated to another server")
}

func VersionNotFound(id string) *StatusError {
	return newErr(http.StatusNotFound, "version not found: "+id)
}

func ServerInfoNotFound() *StatusError {
	return newErr(http.StatusInternalServerError, "version has no server download")
}

// ProvisionFailed reports any failure inside the provisioning transaction:
// daemon errors, volume prep, path normalisation all collapse into this one
// client-facing kind, per the rollback policy.
func ProvisionFailed(reason string) *StatusError {
	return newErr(http.StatusInternalServerError, "failed to provision server: "+reason)
}

func Unauthorized(reason string) *StatusError {
	return newErr(http.StatusUnauthorized, reason)
}

func Forbidden(reason string) *StatusError {
	return newErr(http.StatusForbidden, reason)
}

func ServerNotFound() *StatusError {
	return newErr(http.StatusNotFound, "server not found")
}

func BadRequest(reason string) *StatusError {
	return newErr(http.StatusBadRequest, reason)
}

func Internal(reason string) *StatusError {
	return newErr(http.StatusInternalServerError, reason)
}

func Conflict(reason string) *StatusError {
	return newErr(http.StatusConflict, reason)
}
