// Package services drives procedure executions end to end.
//
// An Invoker acquires a connection, creates the execution, runs it and pulls
// every row into a visitor, closing the execution on every path.
package services
