/*
Package ports defines the driven ports (interfaces) of the calculator.

These interfaces decouple the facade from concrete backends, so the same
computation can be cached in process memory or in Redis.

# Key Interfaces

  - ResultStore: caches SquareRootResult values by key.
  - Locker: serialises computation of one key across goroutines or replicas.
*/
package ports
