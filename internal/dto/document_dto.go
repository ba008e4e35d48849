package dto

type UploadResponse struct {
	Message  string `json:"message"`
	Filename string `json:"filename"`
}

type AddDocumentRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type AddDocumentResponse struct {
	Source     string `json:"source"`
	ChunkCount int    `json:"chunk_count"`
}

// PublishEmbedChunkMessage is the payload of one embedding job on the
// document-chunk topic.
type PublishEmbedChunkMessage struct {
	Source     string `json:"source"`
	ChunkIndex int    `json:"chunk_index"`
	Content    string `json:"content"`
}
