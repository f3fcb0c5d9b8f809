// Package domain contains the study entities exchanged between the generation
// layer and the interaction sessions: chat messages, quizzes, flashcards and
// study plans. Constructors validate their input so that no entity is ever
// built with a missing required field.
package domain
