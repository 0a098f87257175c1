// Package blob is the entry point for blob storage. Callers depend on the
// aliases declared here; concrete backends live under internal/infra/blob.
package blob

import (
	"uamtta/internal/blob/core"
	"uamtta/internal/infra/blob/fs"
	"uamtta/internal/infra/blob/memory"
	"uamtta/internal/infra/blob/s3"
)

// Store aliases core.Store.
type Store = core.Store

// Info aliases core.Info.
type Info = core.Info

// PutOptions aliases core.PutOptions.
type PutOptions = core.PutOptions

// Driver aliases core.Driver.
type Driver = core.Driver

// Driver values.
const (
	DriverFilesystem = core.DriverFilesystem
	DriverS3         = core.DriverS3
	DriverMemory     = core.DriverMemory
)

// Sentinel errors.
var (
	ErrNotFound = core.ErrNotFound
	ErrExists   = core.ErrExists
)

// NewMemory returns an in-memory store.
func NewMemory() Store { return memory.New() }

// NewFilesystem returns a filesystem store rooted at root.
func NewFilesystem(root string) (Store, error) { return fs.New(root) }

// NewS3Mock returns an S3 store served by a fake in-process transport.
func NewS3Mock() Store { return s3.NewMockForTests() }
