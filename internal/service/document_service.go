package service

import (
	"context"

	"docchat-be/internal/constant"
	"docchat-be/internal/dto"
	"docchat-be/internal/pkg/logger"
	"docchat-be/internal/pkg/serverutils"
	"docchat-be/pkg/extract"
	"docchat-be/pkg/rag/lexical"
	"docchat-be/pkg/store"
	"docchat-be/pkg/utils"
)

// IDocumentService turns uploads into the active lexical corpus and feeds the
// default corpus through the embedding pipeline.
type IDocumentService interface {
	// IndexUpload extracts, chunks, and indexes an uploaded PDF, replacing any
	// previously uploaded document.
	IndexUpload(ctx context.Context, filePath, originalName string) (*dto.UploadResponse, error)

	// AddToDefaultCorpus chunks a document and queues its chunks for
	// embedding into the default corpus.
	AddToDefaultCorpus(ctx context.Context, request *dto.AddDocumentRequest) (*dto.AddDocumentResponse, error)
}

type documentService struct {
	extractor    extract.Extractor
	lexicalIndex *lexical.Index
	publisher    IPublisherService
	logger       logger.ILogger
	chunkSize    int
	chunkOverlap int
}

func NewDocumentService(
	extractor extract.Extractor,
	lexicalIndex *lexical.Index,
	publisher IPublisherService,
	log logger.ILogger,
	chunkSize int,
	chunkOverlap int,
) IDocumentService {
	return &documentService{
		extractor:    extractor,
		lexicalIndex: lexicalIndex,
		publisher:    publisher,
		logger:       log,
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
	}
}

func (ds *documentService) IndexUpload(ctx context.Context, filePath, originalName string) (*dto.UploadResponse, error) {
	rawText, err := ds.extractor.Extract(filePath)
	if err != nil {
		return nil, serverutils.NewUpstreamError("Failed to process document", err)
	}

	texts, err := utils.SplitText(rawText, ds.chunkSize, ds.chunkOverlap)
	if err != nil {
		// Misconfigured chunking is fatal for ingestion, not retriable.
		return nil, err
	}

	chunks := make([]store.Chunk, len(texts))
	for i, t := range texts {
		chunks[i] = store.Chunk{
			Text: t,
			Metadata: map[string]string{
				"source":   constant.ChunkMetadataSourceUploaded,
				"filename": originalName,
			},
		}
	}

	ds.lexicalIndex.Index(chunks)

	ds.logger.Info("document", "indexed uploaded document", map[string]interface{}{
		"filename": originalName,
		"chunks":   len(chunks),
	})

	return &dto.UploadResponse{
		Message:  "Document uploaded and indexed successfully! Now chatting with your uploaded document.",
		Filename: originalName,
	}, nil
}

func (ds *documentService) AddToDefaultCorpus(ctx context.Context, request *dto.AddDocumentRequest) (*dto.AddDocumentResponse, error) {
	texts, err := utils.SplitText(request.Content, ds.chunkSize, ds.chunkOverlap)
	if err != nil {
		return nil, err
	}

	if err := ds.publisher.PublishChunks(ctx, request.Title, texts); err != nil {
		return nil, serverutils.NewUpstreamError("Failed to queue document for embedding", err)
	}

	ds.logger.Info("document", "queued document for default corpus", map[string]interface{}{
		"source": request.Title,
		"chunks": len(texts),
	})

	return &dto.AddDocumentResponse{
		Source:     request.Title,
		ChunkCount: len(texts),
	}, nil
}
