package domain

import "errors"

var (
	ErrNodeNotFound    = errors.New("node not found")
	ErrEdgeNotFound    = errors.New("edge not found")
	ErrInvalidCategory = errors.New("invalid category")
	ErrEmptyLabel      = errors.New("label is required")
	ErrEmptyFormula    = errors.New("formula is required")
	ErrSelfLoop        = errors.New("edge source and target cannot be the same")
	ErrDuplicateEdge   = errors.New("edge already exists")
	ErrDanglingEdge    = errors.New("edge endpoint does not exist")
	ErrDuplicateNode   = errors.New("duplicate node id")
	ErrDuplicateEdgeID = errors.New("duplicate edge id")
)
