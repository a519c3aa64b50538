package domain

import "errors"

// ErrTooManyChildren is returned when a child is attached to a node that already holds MaxChildren.
var ErrTooManyChildren = errors.New("child capacity exceeded")

// ErrNilOperand is returned when a precondition operator is built without its operands.
var ErrNilOperand = errors.New("precondition operand missing")

// ErrNodeNotFound is returned when a node handle does not belong to the tree.
var ErrNodeNotFound = errors.New("node not found")

// ErrAlreadyAttached is returned when a node that already has a parent is attached again.
var ErrAlreadyAttached = errors.New("node already attached")

// ErrUnknownNodeType is returned when a definition names a node type the compiler does not know.
var ErrUnknownNodeType = errors.New("unknown node type")

// ErrUnknownAction is returned when a leaf references an action missing from the registry.
var ErrUnknownAction = errors.New("unknown action")

// ErrUnknownCondition is returned when a precondition references a named condition missing from the registry.
var ErrUnknownCondition = errors.New("unknown condition")

// ErrInvalidDefinition is returned when a tree definition fails validation.
var ErrInvalidDefinition = errors.New("invalid tree definition")

// ErrTreeNotFound is returned when a loader has no tree under the requested name.
var ErrTreeNotFound = errors.New("tree not found")
