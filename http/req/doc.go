/*
Package req provides ergonomics for handling an HTTP request.

Package req provides a helper for parsing payloads in an HTTP request.
It supports JSON-encoded payloads, payloads encoded in query parameters,
and file uploads sent either as multipart forms or raw bodies.
In the first two cases, package req expects to parse payloads into a pointer to a struct.
That struct ought to leverage the appropriate struct tags for performing two tasks.
First, matching keys in the payload to fields on the struct.
Second, for validating the payload's data meets requirements.

Errors arising from malformed or invalid payloads wrap ridewitus.ErrNotValid,
so they render as 400 INVALID_INPUT.
*/
package req
