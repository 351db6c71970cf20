// Package bind registers struct fields as namedvars variables, driven by struct tags.
//
// Fields opt in with a namedvar tag:
//
//	type Settings struct {
//		Retries int           `namedvar:"name=retries,desc='Attempts per request'"`
//		Timeout time.Duration `namedvar:""` // registered as "Timeout"
//		Build   string        `namedvar:"name=build,readonly"`
//		Scratch string        `namedvar:"-"`
//	}
//
//	vars, err := bind.Struct(scope, &settings)
//
// Supported keys are name (defaults to the field name), desc and readonly.
// A field is bound as a reference to its storage; readonly fields are bound
// through a getter with no setter.
package bind
