// Package mem maps anonymous read-write-execute memory at an exact address.
//
// On linux the mapping uses MAP_FIXED_NOREPLACE so that an occupied range
// fails with EEXIST instead of being silently replaced. Kernels older than
// 4.17 ignore the flag and may return a different address; that grant is
// released and reported as a mismatch. On windows VirtualAlloc with a
// non-nil address either succeeds in place or fails.
package mem
