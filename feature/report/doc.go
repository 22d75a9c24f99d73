// Package report turns reconciliation results into something people read.
//
// Lines and Render produce the console form, one line per day without
// differences and one line per peer with missing photos:
//
//	For day: '2024-04-15' no difference have been found.
//	For day: '2024-04-16', you are missing: ["5f1c…", "9ab0…"] - we can find it in 'Lev' collection.
//
// Document is the JSON form, shared by the CLI --json output and the API.
//
// # HTTP Endpoints
//
//   - GET /reconcile : Full report (supports ?refresh=true).
//   - GET /reconcile/:day : Report for one YYYY-MM-DD day.
package report
