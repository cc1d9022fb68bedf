package errors

// ErrorCode classifies a failure. Views and the menu branch on the code,
// never on the message text.
type ErrorCode string

// Error is a coded error. Data carries the offending input or command
// line and is appended to the rendered message.
type Error interface {
	error
	Code() ErrorCode
	WithMessage(msg string) Error
	WithData(data any) Error
	GetData() any
	Unwrap() error
}

// Factory creates coded errors.
type Factory interface {
	New(code ErrorCode) Error
	Wrap(code ErrorCode, err error) Error
	WithMessage(code ErrorCode, msg string) Error
	WithData(code ErrorCode, data any) Error
}
