package cmd

import "log/slog"

// Error is a failure of a kaleido command. Commands derive their errors
// from the sentinels below with [Error.Wrap] and [Error.With], so callers
// match them with errors.Is and main logs the attributes the command
// attached.
type Error struct {
	msg   string
	err   error
	attrs []slog.Attr
}

// NewError returns a sentinel with the given message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// Error returns the message followed by the cause, if any.
func (e *Error) Error() string {
	switch {
	case e.err == nil:
		return e.msg
	case e.msg == "":
		return e.err.Error()
	default:
		return e.msg + ": " + e.err.Error()
	}
}

func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel e was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.msg != "" && t.msg == e.msg
}

// LogValue groups the message, the cause and the attached attributes, so
// a failed source or format is named in the log record.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.Any("cause", e.err))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap returns a copy of e caused by err.
func (e *Error) Wrap(err error) *Error {
	c := *e
	c.err = err

	return &c
}

// With returns a copy of e with attrs appended. The receiver is unchanged.
func (e *Error) With(attrs ...slog.Attr) *Error {
	c := *e
	c.attrs = append(append(make([]slog.Attr, 0, len(e.attrs)+len(attrs)), e.attrs...), attrs...)

	return &c
}

var (
	// ErrOpenSource reports a source name that could not be opened or was
	// not found on the search path.
	ErrOpenSource = NewError("open source")
	// ErrParseFailed reports that parse --strict saw at least one failed
	// item.
	ErrParseFailed = NewError("source has parse errors")
	ErrWriteOutput = NewError("write output")
	ErrYAMLMarshal = NewError("marshal YAML")
	ErrWriteConfig = NewError("write configuration file")
	// ErrFileExists reports that init would overwrite a configuration file.
	ErrFileExists   = NewError("file exists (use --force to overwrite)")
	ErrUnknownValue = NewError("unknown value")
)
