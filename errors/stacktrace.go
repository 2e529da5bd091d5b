package errors

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// stackTracer is implemented by errors that carry a call stack. All errors
// created by github.com/pkg/errors implement it.
type stackTracer interface {
	StackTrace() errors.StackTrace
}

// stackTrace returns the stack trace carried by given error or any error it
// wraps. It returns nil if no stack trace information is found.
func stackTrace(err error) errors.StackTrace {
	for {
		if st, ok := err.(stackTracer); ok {
			return st.StackTrace()
		}
		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return nil
		}
	}
}

// Format implements fmt.Formatter so that %+v prints the full stack trace of
// the innermost wrap while %v and %s stay compact.
func (e *wrappedError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			if st := stackTrace(e); st != nil {
				fmt.Fprintf(s, "%+v\n", st)
			}
			io.WriteString(s, e.Error())
			return
		}
		fallthrough
	case 's':
		io.WriteString(s, e.Error())
	case 'q':
		fmt.Fprintf(s, "%q", e.Error())
	}
}
