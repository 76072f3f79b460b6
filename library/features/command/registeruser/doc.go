// Package registeruser implements the registration of a library user with an explicit lending policy.
package registeruser
