// Package output writes procedure rows somewhere a user can see them: a
// listing on the terminal or a directory of extracted files.
//
// Both sinks expose Add with the row visitor signature, so they plug straight
// into services.Invoker.Call.
package output
