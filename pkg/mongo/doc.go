// Package mongo wraps the official MongoDB driver with env-based
// configuration, connection retries and a health check helper. The users
// module builds its credential store on the returned database handle.
package mongo
