// Package logger provides structured logging for gofetch clients using zerolog.
//
// A Logger is a thin wrapper over zerolog.Logger that carries the client name,
// component tags and request-scoped fields. Named loggers are kept in a small
// registry so every part of a client logs under the same component.
//
// # Configuration
//
//	logger:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("httpclient")
//	log.Info("request sent", logger.Fields("method", "GET", "url", "/items"))
//
// Printf adapts a Logger to printf-style sinks such as the resty client logger.
package logger
