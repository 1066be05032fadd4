// Package domain contains the core types and business rules of Wayfarer.
// It has no dependencies on adapters or external services.
package domain
