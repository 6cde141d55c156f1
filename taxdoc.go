// Package taxdoc converts markup captured from Korean tax-law pages (court
// precedents, tribunal rulings and administrative interpretations) into
// hierarchically structured markdown for storage and summarization.
//
// This package contains domain types, interfaces and the pure structuring
// algorithms following Ben Johnson's Standard Package Layout. Implementations
// that need third-party code live in subdirectories named after their primary
// dependency (e.g., goquery/, sqlite/, gemini/).
package taxdoc
