// Package registry maps the action and condition names used in tree definitions
// to host code. It also ships a few built-in actions and the Blackboard payload.
package registry
