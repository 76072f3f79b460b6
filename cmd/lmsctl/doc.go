// Command lmsctl is the operator CLI of the circulation engine. Every subcommand builds its handler on
// the configured event store, runs exactly one command or query and prints the result as JSON.
//
// The memory store lives only as long as the process, which makes it useful for dry runs. Use the
// sqlite store for a single terminal and postgres for shared deployments.
package main
