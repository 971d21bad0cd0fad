package chunk_queue

import "errors"

var (
	ErrBrokerConnectFailed = errors.New("failed to connect to broker")
	ErrQueueDeclareFailed  = errors.New("failed to declare queue")
	ErrPublishFailed       = errors.New("failed to publish chunk message")
	ErrConsumeFailed       = errors.New("failed to start consuming")
)
