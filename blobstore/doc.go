// Package blobstore abstracts where datasets and model snapshots live.
//
// Backends are provided for the local filesystem, memory (tests), AWS S3
// (subpackage s3) and MinIO / S3-compatible object storage (subpackage minio).
// Blobs are read and written as whole sequential streams.
package blobstore
