// Package validator checks tree definitions for field and structural errors
// before they reach the compiler.
package validator
