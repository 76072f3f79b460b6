// Package assigncopy implements the Assign Copy use case: a reservation gets a copy to collect.
//
// The outcome is three-valued. A reservation that already has a copy is left alone, a free copy is
// assigned, or nothing happens because no copy is free. Staff can name the copy explicitly.
package assigncopy
