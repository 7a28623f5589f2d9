// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments (development vs production)
// and a Fiber middleware that logs every request of the catalog API.
//
// # Context Awareness
//
// The WithRayID helper extracts the RayID from a Fiber context and attaches it to the
// log entry, so that the start, completion and any reconcile summary of one request
// can be correlated.
//
// # Configuration
//
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	app.Use(logger.Middleware(log))
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Movie update failed", zap.Error(err))
package logger
