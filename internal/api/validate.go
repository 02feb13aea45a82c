package api

import "github.com/go-playground/validator/v10"

// Shared validator instance; struct tags are the validation pipes.
var validate = validator.New()
