// Package ports defines the interfaces that connect the felfship application
// layer to operating system adapters.
//
// # Port Interfaces
//
//   - [Dialer]: opens the worker's outbound connection to the controller
//   - [Mapper]: maps executable memory at an exact address
//   - [Dispatcher]: transfers control into loaded code
//   - [Spawner]: launches one worker process per listener connection
//   - [PayloadSource]: supplies the FELF container the controller serves
//   - [Logger]: structured logging abstraction
//
// The application layer (internal/app) depends only on these interfaces.
// Adapters under internal/adapters implement them on top of the OS.
package ports
