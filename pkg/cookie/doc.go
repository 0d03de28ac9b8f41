// Package cookie provides a small cookie manager with functional options
// for default attributes. The session transport uses it to deliver tokens
// as HttpOnly cookies that are Secure outside development.
package cookie
