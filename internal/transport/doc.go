// Package transport implements the worker's length-prefixed payload protocol:
//
//	[4 bytes: length N, native byte order][N bytes: FELF container]
//
// Reads block without timeout. A read that makes no progress, because the
// peer closed or the socket failed, ends the exchange with
// domain.ErrShortRead; it is never retried.
package transport
