// Package closeloan implements the Close Loan use case: a copy comes back to the library.
//
// Closing writes the loan's history record and, in the same append, hands the copy to the
// oldest pending reservation for the title. The reservation holder is notified after the append.
package closeloan
