// Package schedsync provides the core of a small document sync gateway for
// the daily scheduler application.
//
// A fixed set of named JSON documents (see AllowedFiles) is kept in a durable
// object store. Clients list the stored keys, upload a document by name, and
// download it again on another machine. The package holds no state of its
// own: every operation is a single call into an ObjectStore.
//
// # Key Components
//
//   - Service: validation and pass-through calls for list, upload and download
//   - ObjectStore: interface for the backing key-object store
//   - Pinger: optional readiness check implemented by network-backed stores
//
// # Storage Backends
//
// Backends live in their own packages and all satisfy ObjectStore:
//
//   - memory: in-process map, used by tests and throwaway servers
//   - filesystem: one file per key under a sandboxed os.Root
//   - database/sqlite, database/postgres: one row per key
//   - s3: S3-compatible buckets (AWS S3, Cloudflare R2, MinIO)
//   - redis: one hash per key plus a key index set
//
// # Example Usage
//
//	store := memory.NewStore()
//	service := schedsync.NewService(store)
//
//	result, err := service.Upload(ctx, schedsync.UploadRequest{
//	    Filename: "tasks.json",
//	    Content:  `{"queue":[]}`,
//	})
//
//	doc, err := service.Download(ctx, "tasks.json")
//
// See the http package for the REST surface built on top of Service.
package schedsync
