// Package userloans implements the User Loans query: the active loans of a user with due dates.
package userloans
