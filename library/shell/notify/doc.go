// Package notify contains the shell.Notifier implementations.
//
// RedisStreamNotifier hands notifications to a mailer process through a Redis stream.
// LogNotifier writes them to a structured logger, NopNotifier drops them.
package notify
