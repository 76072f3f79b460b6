// Package createloan implements the Create Loan use case: lending one copy to a registered user.
//
// The consistency boundary is the copy's title plus the borrower, so the loan cap and the
// one-loan-per-copy rule hold under concurrent writers. Refused loans are recorded as LoanRefused.
package createloan
