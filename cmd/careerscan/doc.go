// Package main hosts the careerscan command.
//
// Architecture overview:
//   - Input: internal/firms reads one firm root URL per non-blank line of the firms file.
//   - Dispatcher & queue: firms are enqueued as indexed tasks on a bounded in-memory queue and drained by a fixed
//     worker pool sized by scan.concurrency. Each result is stored at its task index, so output keeps input order.
//   - Fetch pipeline: every page is a single Colly GET (User-Agent Mozilla/5.0, 10s timeout, no retries). Any
//     failure, non-2xx status or empty body is treated as an absent page. An optional per-host token bucket paces
//     requests when crawler.per_host_qps is set.
//   - Heuristics: internal/careers locates career pages from root-page anchors and extracts openings by role noun,
//     falling back to the page heading or title.
//   - Reporting: status mode prints one line (or table row) per firm; itemized mode writes a CSV, or an XLSX
//     workbook when the output path ends in .xlsx.
//   - Configuration & plumbing: Viper populates config from flags/env/files; zap provides structured logging on
//     stderr with a per-run scan_id; Prometheus metrics are exposed on /metrics when metrics.listen_addr is set.
//
// Quick checklist:
//   - Configure env vars: CAREERSCAN_SCAN_MODE, CAREERSCAN_SCAN_CONCURRENCY, CAREERSCAN_HTTP_TIMEOUT_SECONDS,
//     CAREERSCAN_REPORT_OUTPUT_PATH, CAREERSCAN_REPORT_STATUS_FORMAT, CAREERSCAN_LOGGING_LEVEL.
//   - Run locally: go run ./cmd/careerscan --mode status firms.txt
package main
