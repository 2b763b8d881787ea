// Package validator evaluates declarative, string-encoded rules against named
// input values and collects human-readable messages per field.
//
// Rules are declared per field as pipe-delimited lists ("required|min:3") or
// as token sequences. A token is a rule name optionally followed by ":" and a
// comma-separated parameter list ("unique:users,email,email,id").
//
// # Evaluation
//
// Fields are evaluated in declaration order. Within a field rules run left to
// right and stop at the first rule that fails, so each field records at most
// one message. A rule that is not registered fails the field with a
// "does not exist" message and an UnknownRule diagnostic. A rule declared with
// too few or malformed parameters fails with its normal message, and the
// problem is reported separately through Diagnostics.
//
// # Usage
//
//	v, err := validator.New(validator.WithUniqueLookup(lookup))
//	if err != nil {
//	    return err
//	}
//	v.SetInputs(validator.Inputs{"email": "a@example.com", "age": "17"}).
//	    AddRule("email", "required|email|unique:users,email").
//	    AddRule("age", "numeric|min_value:18")
//	if err := v.Run(ctx); err != nil {
//	    return err // lookup or file inspector failure
//	}
//	if v.Fails() {
//	    msg, _ := v.FirstError("age")
//	    // The field "age" did not pass the validation rule "min_value".
//	}
//
// # Extending
//
// Custom rules implement Handler, or wrap a function with NewHandler, and are
// registered on a Registry or passed with WithRule. DefaultRegistry returns a
// fresh copy of the built-in rules each time.
//
// # Collaborators
//
// The unique rule asks a UniqueLookup how many stored records hold the value.
// The file, image, mimetypes and size rules ask a FileInspector. Both are
// injected with options; rules that need a missing collaborator are
// misconfigured. Collaborator errors abort Run and are returned wrapped.
//
// # Messages
//
// Templates use :attribute for the field name and :<rule> for the first
// parameter. Defaults can be overridden per rule with WithMessages or loaded
// from a YAML or JSON file with LoadMessages.
//
// # Configuration
//
// LoadConfig reads VALIDATOR_* environment variables and NewFromConfig turns
// them into options (timezone, strict parameters, message file, logger).
package validator
