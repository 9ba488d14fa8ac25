/*
Package ports defines the driven ports (interfaces) of the kawiarnia assistant.

These interfaces decouple the session manager from storage backends, so the
same assistant can run in a single process or behind several replicas.

# Key Interfaces

  - StateStore: keeps domain.Session values between turns (memory, Redis).
  - DistributedLocker: serializes turns of one session across replicas.

The classification oracle port lives in package oracle.
*/
package ports
