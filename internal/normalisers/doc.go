// Package normalisers converts the heterogeneous corpus source files into
// uniform documents. Each source kind has its own normaliser; the registry
// resolves kind to normaliser for the corpus pipeline.
//
// Normalisers are pure mappings: absent optional fields degrade to empty
// strings, and identical input bytes always yield identical documents.
package normalisers
