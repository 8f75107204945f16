package validator

// Validator validates a struct according to its `validate` tags.
type Validator interface {
	Validate(data any) error
}

// Rule checks a string value. param is the tag parameter, e.g. "name" for
// `validate:"aquarium=name"`. msg is only read when ok is false.
type Rule func(param, value string) (ok bool, msg string)

// RuleValidator is a Validator that accepts custom string rules.
type RuleValidator interface {
	Validator
	RegisterRule(tag string, rule Rule) error
}
