// Package careers holds the page heuristics of the scanner: the job keyword
// vocabulary, the career-page locator that picks candidate links off a firm's
// home page, and the opening extractor that reads titles and links from a
// candidate page.
package careers
