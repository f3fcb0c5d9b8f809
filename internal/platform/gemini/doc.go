// Package gemini provides an implementation of the generation.Generator interface
// that uses Google's Gemini API for tutoring chat and structured study material.
//
// This package is an infrastructure adapter, connecting the study sessions to
// Google's external Gemini AI service. It translates between the application's
// domain models and the Gemini API without exposing the details of the external
// service to the rest of the application.
//
// Key components:
//
// 1. GeminiGenerator:
//   - Implements the generation.Generator interface
//   - Replays chat history, inline images and the tutor system instruction
//   - Enables the Google Search tool and collects grounding sources
//
// 2. Response schemas:
//   - Declares the JSON shape of quizzes, flashcard sets and study plans
//   - Pins list lengths to the requested item counts
//
// 3. Error handling:
//   - Classifies blocked, empty and malformed responses
//   - Retries transport failures through generation.RetryPolicy when enabled
//   - Redacts credentials from transport errors before they are logged
package gemini
