// Package loanhistory implements the Loan History query over the immutable records of closed loans.
package loanhistory
