// Package logging implements fsproc.Logger.
//
// ConsoleLogger prints to stderr (or any writer) and hides verbose lines
// unless enabled. NullLogger drops everything. WithPrefix tags each line of
// another logger, which the connector uses to mark messages with the
// execution id.
package logging
