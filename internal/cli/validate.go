package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/bevtree/internal/compiler"
	"github.com/aretw0/bevtree/internal/logging"
	"github.com/aretw0/bevtree/internal/runtime"
	"github.com/aretw0/bevtree/internal/validator"
	"github.com/aretw0/bevtree/pkg/adapters/file"
	"github.com/aretw0/bevtree/pkg/domain"
	"github.com/aretw0/bevtree/pkg/registry"
)

// Validate checks one tree, or every tree in dir when name is empty.
// Each tree is parsed, validated against the built-in actions and compiled.
func Validate(w io.Writer, dir, name string) error {
	loader := file.New(dir)
	names := []string{name}
	if name == "" {
		var err error
		if names, err = loader.ListTrees(); err != nil {
			return err
		}
		if len(names) == 0 {
			return fmt.Errorf("%w: no tree files in %s", domain.ErrTreeNotFound, dir)
		}
	}

	reg := registry.NewDefault(logging.NewNop())
	v := validator.New(validator.WithKnownActions(reg.Actions()))

	var errs []error
	for _, n := range names {
		if err := validateTree(loader, reg, v, n); err != nil {
			errs = append(errs, fmt.Errorf("tree %s: %w", n, err))
			continue
		}
		printSystemMessage(w, "%s is valid", n)
	}
	return errors.Join(errs...)
}

func validateTree(loader *file.Loader, reg *registry.Registry, v *validator.Validator, name string) error {
	raw, err := loader.GetTree(name)
	if err != nil {
		return err
	}
	def, err := compiler.NewParser().Parse(raw)
	if err != nil {
		return err
	}
	if err := v.Validate(def); err != nil {
		return err
	}
	logger := logging.NewNop()
	_, err = compiler.New(reg, logger).Compile(runtime.NewTree(runtime.WithLogger(logger)), def)
	return err
}
