// Package domain contains the core types of felfship that do not depend on
// any infrastructure: the error taxonomy, the worker stage machine and the
// loaded memory region.
//
// # Errors
//
// Failures are grouped into three classes, each a wrapper that records the
// stage it happened in:
//
//   - [TransportError]: connect failures and short or failed reads
//   - [ProtocolError]: the payload is not a valid FELF container
//   - [ResourceError]: the fixed-address allocation could not be made
//
// Every class is terminal to a worker. Use errors.As to recover the class and
// errors.Is to test for the specific sentinel.
package domain
