// Package logger wraps zap with the conventions used across timekeeper:
//   - a global sugared logger with a console encoder,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level parsing and configuration,
//   - leveled helpers taking a context (Infof, InfoKV, ErrorKV, ...).
//
// Services accept a context and extract the logger from it, so component
// names and fields such as alarm ids travel with the call.
package logger
