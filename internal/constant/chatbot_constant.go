package constant

const (
	ChatTurnRoleUser      = "user"
	ChatTurnRoleAssistant = "assistant"

	// DefaultSessionTitle is used until the first user turn derives a title.
	DefaultSessionTitle = "New chat"

	// SessionTitleMaxLen is how many characters of the first user turn become
	// the session title; longer messages are truncated with an ellipsis.
	SessionTitleMaxLen = 30

	// RetrievalTopK is how many chunks are gathered per question.
	RetrievalTopK = 5

	// ChunkMetadataSourceUploaded marks chunks from the uploaded document.
	ChunkMetadataSourceUploaded = "uploaded_document"
)
