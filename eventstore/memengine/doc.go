// Package memengine is an in-process event store with the same Query/Append
// contract as the SQL engines. It is used by the handler tests and by
// lmsctl --store=memory.
package memengine
