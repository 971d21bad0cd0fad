package file_service

import "errors"

var (
	ErrFileNotFound         = errors.New("file not found")
	ErrMetadataCreateFailed = errors.New("failed to create file metadata")
	ErrChunkPublishFailed   = errors.New("failed to publish chunk")
	ErrChunkRetrieveFailed  = errors.New("failed to retrieve chunk")
)
