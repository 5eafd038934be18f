/*
Package ports defines the driven ports (interfaces) of the Turing engine.

These interfaces decouple the core from external implementations, allowing machines to be
sourced from files, memory or generators and run records to be kept in any backend.

# Key Interfaces

  - MachineLoader: Resolves a machine name to a compiled spec (directory, memory, cipher catalog).
  - RunStore: Persists finished run records for later inspection.
*/
package ports
