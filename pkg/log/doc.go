// Package log provides the logging abstraction used across felfship.
//
// Components log through the Logger interface so the stager, listener and
// controller can share one zerolog writer while tests stay silent:
//
//	logger := log.NewZerologAdapterWithLogger(zerolog.New(os.Stderr))
//	logger.Info("spawned worker", log.String("worker_id", id))
//
// Addresses are best logged with [Addr], which renders them in hex.
package log
