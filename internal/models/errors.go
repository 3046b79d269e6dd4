package models

import (
	"errors"
)

var (
	ErrGeneral      = errors.New("an error occurred on the server during your request")
	ErrGoalNotFound = errors.New("there is no goal matching your query")
)
