package model

import "errors"

var (
	ErrArticleNotFound = errors.New("article not found")
	ErrInvalidCategory = errors.New("invalid category")
)
