// Package core holds the domain of book circulation in a lending library: the events, the
// Circulation projection that answers availability questions, the typed business errors and the
// small value helpers (ISBN normalization, Open Library ids, dates).
//
// Everything in here is pure. There is no I/O, no clock and no logging; the shell feeds in
// events and times.
//
// In Hexagonal Architecture terminology this is the domain layer.
package core
