// Package services implements the core application logic: the corpus
// embedding pipeline, cosine top-K retrieval, the query service and the
// static-credential authenticator. Services depend on ports, never on
// concrete adapters.
package services
