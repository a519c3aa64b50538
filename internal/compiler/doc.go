// Package compiler turns YAML/JSON tree definitions into runtime trees.
package compiler
