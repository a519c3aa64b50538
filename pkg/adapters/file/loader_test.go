package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/bevtree/pkg/adapters/file"
	"github.com/aretw0/bevtree/pkg/domain"
	contract "github.com/aretw0/bevtree/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestFileLoader_Contract(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "guard.yaml", "type: priority\n")
	writeFile(t, dir, "patrol.json", `{"type": "loop"}`)
	writeFile(t, dir, "README.md", "not a tree")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.yaml"), 0o755))

	contract.TreeLoaderContractTest(t, file.New(dir), map[string][]byte{
		"guard":  []byte("type: priority\n"),
		"patrol": []byte(`{"type": "loop"}`),
	})
}

func TestFileLoader_ExplicitExtension(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "guard.yml", "type: sticky\n")

	loader := file.New(dir)
	data, err := loader.GetTree("guard.yml")
	require.NoError(t, err)
	assert.Equal(t, "type: sticky\n", string(data))

	_, err = loader.GetTree("guard.json")
	assert.ErrorIs(t, err, domain.ErrTreeNotFound)
}

func TestFileLoader_MissingDir(t *testing.T) {
	loader := file.New(filepath.Join(t.TempDir(), "absent"))
	_, err := loader.ListTrees()
	assert.Error(t, err)
}

func TestFileLoader_Watch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "guard.yaml", "type: priority\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loader := file.New(dir, file.WithDebounce(10*time.Millisecond))
	changes, err := loader.Watch(ctx)
	require.NoError(t, err)

	writeFile(t, dir, "notes.txt", "ignored")
	writeFile(t, dir, "guard.yaml", "type: sequence\n")

	select {
	case name := <-changes:
		assert.Equal(t, "guard", name)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change notification")
	}

	cancel()
	for range changes {
	}
}
