// Package validator provides a small validation abstraction for request and
// domain structs.
//
// Business code depends on the Validator interface. The go-playground v10
// implementation lives here and lets modules plug their own rules in with
// RegisterRule, so a failing tag reports the rule's own message.
package validator
