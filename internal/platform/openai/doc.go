// Package openai implements generation.Generator against any endpoint that
// speaks the OpenAI chat completions protocol.
//
// Structured output uses strict JSON-schema response formats. Strict mode
// requires an object at the root, so flashcard sets and study plans are
// requested inside a one-field envelope and unwrapped before decoding.
// This adapter has no web search tool and never returns grounding sources.
package openai
