// Package dispatch holds the one deliberately unsafe operation in felfship:
// calling into machine code at an absolute address.
//
// The callee receives a single pointer-sized argument in the first argument
// register of the platform C calling convention (RDI on linux/amd64, X0 on
// linux/arm64, RCX on windows/amd64). Nothing about the code is validated.
//
// On linux the call runs on a freshly mapped stack with the goroutine locked
// to its OS thread and the garbage collector disabled, since a collection
// would wait forever for a thread that is executing foreign code. The stack
// is mapped by Prepare, so every failure happens before the jump.
package dispatch
