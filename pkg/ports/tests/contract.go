package tests

import (
	"errors"
	"testing"

	"github.com/aretw0/bevtree/pkg/domain"
	"github.com/aretw0/bevtree/pkg/ports"
)

// TreeLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.TreeLoader.
func TreeLoaderContractTest(t *testing.T, loader ports.TreeLoader, setupData map[string][]byte) {
	t.Helper()

	t.Run("GetTree_Success", func(t *testing.T) {
		for name, expectedContent := range setupData {
			content, err := loader.GetTree(name)
			if err != nil {
				t.Fatalf("unexpected error getting tree %s: %v", name, err)
			}
			if string(content) != string(expectedContent) {
				t.Errorf("content mismatch for %s. got %q, want %q", name, content, expectedContent)
			}
		}
	})

	t.Run("GetTree_NotFound", func(t *testing.T) {
		_, err := loader.GetTree("non-existent-tree")
		if !errors.Is(err, domain.ErrTreeNotFound) {
			t.Errorf("expected ErrTreeNotFound, got %v", err)
		}
	})

	t.Run("ListTrees", func(t *testing.T) {
		names, err := loader.ListTrees()
		if err != nil {
			t.Fatalf("unexpected error listing trees: %v", err)
		}

		if len(names) != len(setupData) {
			t.Errorf("expected %d trees, got %d", len(setupData), len(names))
		}

		lookup := make(map[string]bool)
		for _, name := range names {
			lookup[name] = true
		}

		for name := range setupData {
			if !lookup[name] {
				t.Errorf("tree %s missing from list", name)
			}
		}
	})
}
