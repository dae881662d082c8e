// Package output drains closed pages from a dump.Document and writes the
// derived files: a redirect map, page metadata and a plain text dump of
// each page's latest revision.
package output
