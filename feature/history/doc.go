// Package history persists completed reconciliation runs.
//
// A Run records who was reconciled against which source, when, and the
// aggregate counts; each photo a peer had that the owner lacked is stored as a
// Finding. Tables are managed with GORM and work on MySQL or SQLite.
//
// # HTTP Endpoints
//
//   - GET /history : Lists recent runs, newest first (supports ?limit=N).
//   - GET /history/:id : Returns one run with its findings.
package history
