package frameskema

// Package frameskema provides:
//
// - Declarative schemas for columnar batches (ordered fields, value domains, refinements)
// - Exhaustive, deterministically ordered validation reports via Validate/Check/Valid
// - A stable violation model via Violations (column, row, code, message)
// - Optional parallel column evaluation with byte-identical output
//
// Design policy:
// - Keep only public APIs in the root package; batches live in frame/.
// - Place the builder DSL under dsl/, schema documents under schemayaml/,
//   loaders under source/, and the CLI under cmd/frameskema.
// - Data defects are reported as values, never as errors; errors are reserved
//   for unusable arguments and malformed schema definitions.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	s := buildSchema()
//	rep, err := frameskema.Validate(s, batch)
//	if !rep.OK() {
//	    for _, v := range rep.Violations { ... }
//	}
//
//	if err := frameskema.Check(s, batch); err != nil { ... }
