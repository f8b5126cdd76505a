/*
Package resp provides a high-level API for responding to HTTP requests
with an easy way to configure the responses application-wide.

resp provides two ways of responding to an HTTP request:
  - rendering JSON data
  - redirecting

Errors are rendered as JSON with a stable errorCode,
their status code derived from the kind of error.
*/
package resp
