// Package frontmatter extracts the YAML metadata block that opens a Markdown document.
//
// Parse splits a document into its front matter fields and body; Document
// decodes those fields into typed values with mapstructure, including lenient
// timestamp handling for date fields.
package frontmatter
