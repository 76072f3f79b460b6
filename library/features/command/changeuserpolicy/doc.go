// Package changeuserpolicy implements replacing a user's lending policy.
//
// Active loans take the new loan length from the next read on, so their due dates move with it.
package changeuserpolicy
