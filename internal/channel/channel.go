// Package channel implements the pixai.media_scanner method channel.
//
// A channel receives tagged method calls from an application shell and answers
// each with exactly one Response. The only recognised method is scanFile, which
// hands a single path to an Indexer without waiting for the indexing to finish.
package channel

// Name is the channel identifier the shell uses to reach this handler.
const Name = "pixai.media_scanner"

// MethodScanFile is the single operation the channel understands.
const MethodScanFile = "scanFile"

// ArgPath is the argument key holding the file path for scanFile.
const ArgPath = "path"

// CodeInvalidPath is reported when scanFile has no usable path argument.
const (
	CodeInvalidPath    = "INVALID_PATH"
	MessageInvalidPath = "Path is null"
)

// Request is a single method call delivered over the channel.
type Request struct {
	Method    string         `json:"method"`
	Arguments map[string]any `json:"arguments"`
}

// Argument returns the named argument as a string.
// ok is false when the argument is absent, null, or not a string.
func (r Request) Argument(name string) (value string, ok bool) {
	if r.Arguments == nil {
		return "", false
	}
	raw, present := r.Arguments[name]
	if !present || raw == nil {
		return "", false
	}
	s, isString := raw.(string)
	return s, isString
}

// Path returns the scanFile path argument.
func (r Request) Path() (string, bool) {
	return r.Argument(ArgPath)
}

// Status tags the Response variant.
type Status string

const (
	StatusSuccess        Status = "success"
	StatusError          Status = "error"
	StatusNotImplemented Status = "not_implemented"
)

// Error describes a failed call.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details"`
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

// Response is the single answer produced for a Request.
// Result is only meaningful for StatusSuccess, Error only for StatusError.
type Response struct {
	Status Status `json:"status"`
	Result any    `json:"result"`
	Error  *Error `json:"error,omitempty"`
}

// Success builds a successful response carrying result (which may be nil).
func Success(result any) Response {
	return Response{Status: StatusSuccess, Result: result}
}

// Failure builds an error response.
func Failure(code, message string, details any) Response {
	return Response{
		Status: StatusError,
		Error:  &Error{Code: code, Message: message, Details: details},
	}
}

// NotImplemented signals that no handler exists for the requested method.
func NotImplemented() Response {
	return Response{Status: StatusNotImplemented}
}

func (r Response) IsSuccess() bool { return r.Status == StatusSuccess }

func (r Response) IsNotImplemented() bool { return r.Status == StatusNotImplemented }

// Err returns the response error, or nil for non-error variants.
func (r Response) Err() error {
	if r.Status != StatusError || r.Error == nil {
		return nil
	}
	return r.Error
}
