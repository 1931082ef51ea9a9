// Package clock hides time.Now behind the Clocker interface so that
// timestamps written by usecases and tokens can be pinned in tests.
package clock
