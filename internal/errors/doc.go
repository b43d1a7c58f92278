// Package errors provides structured error handling for catalog-api.
//
// Errors carry a Code, a user-facing message, an optional wrapped cause,
// and optional metadata:
//
//	err := errors.NotFound("entity not found")
//	err := errors.InvalidArgumentf("unknown entity type: %q", raw)
//
// Adding metadata:
//
//	err := errors.NotFound("entity not found").
//	    WithMeta("entity_id", id)
//
// Wrapping errors:
//
//	if err := repo.Toggle(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to toggle favorite")
//	}
//
// Checking errors:
//
//	if errors.IsNotFound(err) {
//	    // handle missing entity
//	}
//
// Config validation uses the ValidationBuilder:
//
//	vb := errors.NewValidationBuilder()
//	if cfg.Store == nil {
//	    vb.RequiredField("Store")
//	}
//	return vb.Build()
package errors
