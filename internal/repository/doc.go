// Package repository defines the data access interfaces for physmap.
//
// The editor persists its whole graph as one serialized record under a fixed
// key, the way a browser app would use local storage. KVStore is that
// key-value contract. The sqlite subpackage implements it.
//
// # Quarantine
//
// Records that fail to deserialize are not silently dropped. The persistence
// layer moves them aside with Quarantine so they can be inspected later, and
// the editor starts from the seed graph instead.
//
// # Testing
//
// The sqlite implementation is tested against in-memory databases.
package repository
