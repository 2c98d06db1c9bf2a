// Package report renders scan results: status lines or a table for status
// mode, and a CSV (or XLSX) openings file for itemized mode.
package report
