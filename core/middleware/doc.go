// Package middleware contains HTTP middleware for the report API.
//
// # Components
//
//   - auth: API key validation protecting every route when a key is configured.
//   - rayid: assigns a Request ID (RayID) to every request, stores it in the
//     Fiber locals under "ray_id" and echoes it in the X-Ray-ID header so that
//     logger.WithRayID can correlate log entries.
package middleware
