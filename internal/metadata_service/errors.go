package metadata_service

import "errors"

var (
	ErrFileNotFound       = errors.New("file not found")
	ErrPlacementNotFound  = errors.New("placement not found")
	ErrFileEntryExists    = errors.New("file entry already exists")
	ErrPlacementExists    = errors.New("placement already exists")
	ErrIntegrityViolation = errors.New("metadata integrity violation")
)
