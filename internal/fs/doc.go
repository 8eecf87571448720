// Package fs is the seam between the local snapshot store and the disk.
//
// Production code goes through [Default], a [LocalFS] delegating to the
// os package:
//
//	file, err := fs.Default.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
//
// Durability tests swap in [FaultyFS], which arms individual files with
// faults: a write that dies partway through a temp file, an fsync that
// fails right before publish, a close that reports an error.
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule(".tmp-", fs.Fault{FailAfterBytes: 1024})
//
// None of the interfaces take a context.Context. Local filesystem calls
// are not interruptible at the syscall level, and the remote backends
// that do have real cancellation points live behind archive.Blob.
package fs
