// Package renewloan implements the Renew Loan use case.
//
// Decide only computes the renewal. CommandHandler.Preview shows the renewal that would be
// recorded against the current state without appending, CommandHandler.Handle records it.
// Force lets staff renew past the user's renewal limit.
package renewloan
