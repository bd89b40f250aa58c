// Package s3 provides a blobstore.BlobStore backed by AWS S3.
package s3
