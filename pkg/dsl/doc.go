/*
Package dsl provides a Go DSL for programmatically constructing behavior tree definitions.

It produces the same domain.Node values the YAML/JSON parser does, so a tree built here
can be validated, compiled and rendered like a file-based one.

Example usage:

	guard := dsl.Priority("guard",
		dsl.Sequence("flee",
			dsl.Action("run", "wait").Param("ticks", 2),
		).When(dsl.All(dsl.Expr("hp < 3"), dsl.Ref("enemy_visible"))),
		dsl.Forever("patrol", dsl.Action("step", "succeed")),
	)

	loader, err := dsl.New().Add("guard", guard).Build()
	// ... pass loader to bevtree.New(..., bevtree.WithLoader(loader))
*/
package dsl
