// Package domain defines the core types for the physmap formula graph editor.
//
// A graph is a flat list of formula nodes joined by directed derivation edges.
// Nothing in this package knows about storage, HTTP, or rendering.
//
// # Core Types
//
// Node is one physics formula or law. Its NodeData payload carries a label,
// a formula in TeX markup, a description, and a Category.
//
// Edge is a directed derivation relationship from one node to another, with
// an optional label ("substitute", "integrate", ...).
//
// Graph holds the nodes, the edges, and the id counter used to mint new node
// identifiers.
//
// # Styles
//
// Every node's visual style is derived from its category through
// ResolveStyle. Unknown categories fall back to the default style, so a
// corrupted record never breaks rendering.
//
// # Identifiers
//
// Seed nodes use the "node-<n>" form, nodes added at runtime use a bare
// "<n>". NodeIDNumber reads the numeric part of either form so the id
// counter can be recovered from persisted nodes.
package domain
