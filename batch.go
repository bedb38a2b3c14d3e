package cauldron

// BindingSpec holds configuration for one binding in a batch registration.
type BindingSpec struct {
	Abstract string
	Concrete any
	Shared   bool
}

// Spec creates a BindingSpec. This is a convenience for BindAll.
//
// Example:
//
//	err := c.BindAll(
//	    cauldron.Spec("config", cfg, true),
//	    cauldron.Spec("mailer", cauldron.Type[SMTPMailer](), true),
//	    cauldron.Spec("report", cauldron.Type[Report](), false),
//	)
func Spec(abstract string, concrete any, shared bool) BindingSpec {
	return BindingSpec{Abstract: abstract, Concrete: concrete, Shared: shared}
}

// BindAll registers multiple bindings in a single call, stopping at the first
// failure.
func (c *Container) BindAll(specs ...BindingSpec) error {
	for _, spec := range specs {
		if err := c.Bind(spec.Abstract, spec.Concrete, spec.Shared); err != nil {
			return err
		}
	}

	return nil
}
