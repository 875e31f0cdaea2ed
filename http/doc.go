// Package http provides the HTTP front of the scheduler document sync gateway.
//
// The router exposes four operations over a schedsync.ObjectStore:
//
//	GET  /list                 {"files": [...], "count": n}
//	POST /upload               {"filename": ..., "content": ...}
//	GET  /download/{filename}  raw JSON document
//	GET  /                     service description
//
// OPTIONS on any path answers 200 with an empty body. Anything else answers
// 404 {"error": "Not found"}.
//
// # Errors
//
// Route handlers return errors instead of writing them. A single adapter
// passes them to HandleError, which maps the schedsync sentinels:
//
//   - schedsync.ErrMissingContent: 400 "Missing filename or content"
//   - schedsync.ErrFilenameNotAllowed: 400 "Invalid filename. Only scheduler JSON files allowed."
//   - schedsync.ErrNotFound: 404 "File not found"
//
// Every other error, and any recovered panic, becomes 500 {"error": msg}.
//
// # CORS
//
// By default every response, including errors and preflight, carries:
//
//	Access-Control-Allow-Origin: *
//	Access-Control-Allow-Methods: GET, POST, OPTIONS
//	Access-Control-Allow-Headers: Content-Type
//
// When CORSConfig lists explicit origins, github.com/go-chi/cors enforces
// them instead.
//
// # Usage
//
//	svc := schedsync.NewService(memory.NewStore())
//	h := http.NewHandler(&http.HandlerConfig{MaxUploadSize: 10 << 20}, svc)
//	log.Fatal(nethttp.ListenAndServe(":5708", h.Router()))
package http
