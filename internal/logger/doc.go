// Package logger provides a small wrapper around zap to offer:
//   - a global sugared logger writing to standard error,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level configuration and parsing utilities,
//   - key-value helpers (DebugKV, InfoKV, WarnKV, ErrorKV).
//
// Standard output is never used: it belongs to the launched server, which
// speaks its protocol over stdio.
package logger
