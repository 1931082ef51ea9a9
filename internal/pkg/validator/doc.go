// Package validator validates request and usecase input structs.
//
// Usecases depend on the Validator interface; V10Validator is the
// go-playground/validator implementation with English messages and the
// custom tags used by this service.
package validator
