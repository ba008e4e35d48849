package prompt

import "strings"

// Builder assembles the completion prompts for a grounded answer: a system
// instruction embedding the retrieved context and the behavioral contract,
// and a user instruction restating the question.
type Builder struct {
	context  string
	question string
	uploaded bool
}

// NewBuilder creates a prompt builder. 'uploaded' selects the wording that
// tells the model whether it is answering from the uploaded document or from
// the default document set.
func NewBuilder(context, question string, uploaded bool) *Builder {
	return &Builder{
		context:  context,
		question: question,
		uploaded: uploaded,
	}
}

// NotFoundPhrase is what the model is instructed to answer when the context
// does not contain the answer.
const NotFoundPhrase = "Not found in the provided documents"

// BuildSystem returns the system instruction with the context embedded.
func (b *Builder) BuildSystem() string {
	documentType := "the available documents"
	if b.uploaded {
		documentType = "your uploaded document"
	}

	var sb strings.Builder
	sb.WriteString("You are a concise document assistant. Provide clear, direct answers from ")
	sb.WriteString(documentType)
	sb.WriteString(".\n\n")
	sb.WriteString("Rules:\n")
	sb.WriteString("1. Keep responses short and focused (2-4 sentences max)\n")
	sb.WriteString("2. Answer directly without unnecessary introduction\n")
	sb.WriteString("3. Use simple formatting: **bold** for emphasis, • for bullet points\n")
	sb.WriteString("4. If not in documents, say \"" + NotFoundPhrase + "\"\n")
	sb.WriteString("5. Be conversational but brief\n\n")
	sb.WriteString("Context: ")
	sb.WriteString(b.context)
	return sb.String()
}

// BuildUser returns the user instruction restating the question.
func (b *Builder) BuildUser() string {
	return "Answer this briefly and directly based on the documents:\n\n" + b.question
}
