// Package editor holds the in-memory state of the formula graph editor.
//
// Store owns the Graph together with the transient selection and edit state:
// the selected node, the edit-mode flag, and the form buffer. All mutation
// goes through Store's methods. Store does not persist anything itself;
// every method that changes nodes, edges, or the id counter bumps Revision,
// and the caller commits when the revision moves.
//
// Store is not safe for concurrent use. The service layer serialises access.
package editor
