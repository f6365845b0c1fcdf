// Package expect drives interactive external programs by watching their
// output streams for recognized text.
//
// A Command bundles a program, its arguments and environment, and a set of
// Rules. Each rule binds an output stream to a predicate over the stream's
// accumulated content and a reaction: write a line to the program's stdin,
// record a failure fragment, or abort the process outright. There is no
// structured protocol involved; this is text-prompt automation, the only
// genuinely fragile part of talking to vendor tools, kept behind one small
// interface so it can be exercised with fake programs in tests.
//
// Run spawns the process, feeds arriving stdout/stderr chunks through the
// rules, and resolves a single Outcome when the process exits: the recorded
// failure fragment, or success if none was recorded.
package expect
