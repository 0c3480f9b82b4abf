// Package httpx is the outbound HTTP layer of the console.
//
// Every request goes to the primary origin first. When that attempt fails
// with a network error or a 5xx status, the request is replayed once against
// the secondary origin. The decision is made by WithFallback, a pure function
// over the attempt and its outcome, so the request itself is never mutated:
// each attempt builds a fresh *http.Request from the immutable Request value.
//
// Failures that are not retried (4xx, a failed secondary attempt, a request
// that was already retried, caller cancellation) reach the caller unchanged
// as *StatusError or *NetworkError.
package httpx
