// Package model defines the topological grid model consumed by the compiler:
// ordered buses plus injection devices (loads, static generators, shunts,
// generators, batteries) and branch devices (lines, transformers, converters,
// DC lines, HVDC links).
//
// The model is an input collaborator. It owns identities (uuid.UUID), bus
// references, raw electrical parameters, activity flags, optional
// per-time-step profiles and device-side capabilities such as temperature
// correction and virtual taps. It performs no indexing and no validation
// beyond what is needed to hand the data over; package compile turns it into
// flat arrays.
//
// Enumeration order of every slice in Circuit is observable behaviour: the
// compiler preserves it in its output arrays and uses it to resolve
// conflicting voltage set points ("first wins").
package model
