// Package errors provides foundational, type-safe error primitives used across cocos-skills.
//
// This package contains classified error types and helpers for robust error handling,
// including a fluent builder API for constructing ClassifiedError values with context.
//
// Key features:
//   - ErrorCategory: Broad error classification (config, network, editor, document, etc.)
//   - ErrorSeverity: Impact level (fatal, error, warning, info)
//   - RetryStrategy: Advisory retry classification (nothing in this tool retries automatically)
//   - ClassifiedError: Structured error with category, severity, and context
//   - ErrorBuilder: Fluent API for creating classified errors
//   - CLI adapter for exit codes and error presentation
//
// Example usage:
//
//	err := errors.NewError(errors.CategoryEditor, "create-asset rejected").
//		WithContext("path", url).
//		WithCause(originalErr).
//		Build()
package errors
