package entities

import "errors"

var (
	// ErrNotADirectory is returned by providers when a listing targets a file.
	ErrNotADirectory = errors.New("path is a file, not a directory")

	// ErrNotAFile is returned by providers when a read targets a directory.
	ErrNotAFile = errors.New("path is a directory, not a file")

	// ErrNotText is returned when file content cannot be decoded as UTF-8.
	ErrNotText = errors.New("content is not valid UTF-8 text")

	// ErrMissingToken is a configuration failure: no upstream token was found.
	ErrMissingToken = errors.New("no auth token configured for the upstream provider")

	// ErrMissingAPIKey is a configuration failure: no chat model API key was found.
	ErrMissingAPIKey = errors.New("no API key configured for the chat model")
)
