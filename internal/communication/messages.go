package communication

// Message Type Constants
const (
	// Scheduler operations
	MessageTypeSendHeartbeat        = "SendHeartbeat"
	MessageTypeAssignWorkerForChunk = "AssignWorkerForChunk"

	// Worker operations
	MessageTypeStoreChunk    = "StoreChunk"
	MessageTypeRetrieveChunk = "RetrieveChunk"
)

// --- Payload Structs ---

type SendHeartbeatRequest struct {
	WorkerID string `json:"workerId"`
	Address  string `json:"address"`
}

type SendHeartbeatResponse struct {
	Acknowledged bool   `json:"acknowledged"`
	Message      string `json:"message"`
}

type AssignWorkerForChunkRequest struct {
	RequesterWorkerID string `json:"requesterWorkerId"`
	FileID            string `json:"fileId"`
	ChunkID           int    `json:"chunkId"`
}

type AssignWorkerForChunkResponse struct {
	AssignedWorkerID      string `json:"assignedWorkerId"`
	AssignedWorkerAddress string `json:"assignedWorkerAddress"`
}

type StoreChunkRequest struct {
	WorkerID  string `json:"workerId"`
	FileID    string `json:"fileId"`
	ChunkID   int    `json:"chunkId"`
	ChunkData []byte `json:"chunkData"`
}

type StoreChunkResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type RetrieveChunkRequest struct {
	WorkerID string `json:"workerId"`
	FileID   string `json:"fileId"`
	ChunkID  int    `json:"chunkId"`
}

type RetrieveChunkResponse struct {
	ChunkData []byte `json:"chunkData,omitempty"`
	Found     bool   `json:"found"`
}
