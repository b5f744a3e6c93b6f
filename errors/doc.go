/*
Package errors implements the error kinds used across custody.

Reuse a root error from this package whenever one fits and register a custom
one only when an extension needs to expose a distinct kind to clients. Every
root error carries an ABCI code, which is how a client tells failures apart
after a transaction was rejected.

To register a custom error use Register(code, description). To create an
instance at runtime use ErrXyz.New("...") or Wrap(ErrXyz, "..."), so that a
stack trace is attached at the point of creation.

	%s prints the message
	%+v prints the message with the stack trace of the innermost wrap
*/
package errors
