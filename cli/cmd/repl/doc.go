// Package repl implements an interactive session for evaluating spawn
// constructs against an in-memory world.
//
// Each submitted construct is appended to the session source, and the whole
// source is replayed into a fresh world on every submission. Replaying keeps
// entity handles stable across submissions, so names bound by earlier
// constructs remain visible to later ones, and only the operations produced
// by the newest construct are printed.
package repl
