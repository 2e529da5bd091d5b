/*
Package errors implements the error classes used across the module.

The idea is to reuse as many errors from this package as possible and define
custom package errors only when absolutely necessary. Every error class has a
unique code so clients can distinguish error types and act accordingly. If an
extension (ie. a package under x/) needs a custom class, it must claim a code
namespace and call Register(code, description) during initialization.

There is also support for stacktraces. Always create errors via
ErrXyz.New("...") or errors.Wrap(err, "...") at the point of creation to
ensure a stacktrace is attached. If you wrap multiple times, only the first
wrap records the stack.

Once you have an error, use fmt verbs for more context:
	%s is just the error message
	%+v is the full stack trace
*/
package errors
