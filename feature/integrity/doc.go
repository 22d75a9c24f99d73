// Package integrity checks that the photo tree and the run history are in a
// shape a reconciliation can be trusted on.
//
// # Checks Provided
//
//   - Layout: days with no owner folder (every peer photo that day will be
//     reported as missing), day folders with no user folders and user folders
//     with no photos.
//   - Schema: the history tables have every column the models expect.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/layout : Runs the layout check.
//   - GET /integrity/schema : Runs the history schema check.
package integrity
