// Package diag collects non-fatal diagnostics produced while compiling a grid
// model or formulating a dispatch problem.
//
// What:
//
//   - Logger keeps an ordered, in-memory list of Entry values (warnings and
//     informational notes) so callers can inspect them after the fact.
//   - Every entry is mirrored to an injected *slog.Logger; by default the
//     mirror discards output.
//
// Why:
//
//   - Data conflicts (e.g. two devices asking for different voltage set
//     points on one bus) must never abort a compilation, yet they must stay
//     visible to the caller.
//
// A Logger is owned by a single compilation or dispatch call. It is safe for
// concurrent use, but the order of entries only carries meaning when the
// writer is single-threaded.
package diag
