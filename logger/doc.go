// Package logger provides structured logging on top of zerolog.
//
// Loggers are values passed to the packages that need them; a global
// logger exists for convenience.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.New(&cfg, "my-app").WithComponent("apimanager")
//	log.Debug("request sent", logger.Fields("method", "GET"))
package logger
