// Package crawler defines the shared types and interfaces of the career-page
// scanner: fetch requests and responses, scan tasks, and the records produced
// for each firm.
package crawler
