// Package generation defines the contract between the study sessions and a
// hosted AI/LLM service. It declares the Generator interface for the four
// content generation operations (tutoring chat, quizzes, flashcards and
// study plans), the request types and their local validation, the prompt
// templates, the strict decoders that turn a structured model payload into
// domain values, and the error taxonomy every adapter maps its failures onto.
//
// Adapters for concrete model APIs (Gemini, OpenAI-compatible endpoints) live
// under internal/platform and implement the Generator interface.
package generation
