// Package topology partitions a compiled circuit into electrical islands.
//
// An island is a maximal set of active buses joined by active branches with
// a nonzero DC susceptance. Each island carries its reference buses (Slack
// buses, or the first PV bus promoted when there is none) and the remaining
// PQ/PV buses, which is the split DC formulations need to pin one angle per
// island.
//
// Islands without any Slack or PV bus are still returned, with an empty Ref;
// callers decide whether to skip them.
//
// Complexity of Islands: O(n + m) per time step (BFS over an adjacency list).
package topology
