package errors

// maxBodyBytes bounds how much of a failed response body is kept.
const maxBodyBytes = 4 << 10

// NewHTTPError builds the failure for operation op from a non-2xx response.
func NewHTTPError(op, message string, statusCode int, body []byte) *RequestError {
	if len(body) > maxBodyBytes {
		body = body[:maxBodyBytes]
	}
	return &RequestError{
		Op:         op,
		Message:    message,
		StatusCode: statusCode,
		Body:       string(body),
	}
}

// StatusCode returns the HTTP status carried by err, or 0 when err is not a
// *RequestError (transport faults, decode errors, nil).
func StatusCode(err error) int {
	if re, ok := AsRequestError(err); ok {
		return re.StatusCode
	}
	return 0
}
