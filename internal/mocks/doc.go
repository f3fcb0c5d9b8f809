// Package mocks provides shared mock implementations for testing.
//
// MockGenerator stands in for a model-backed generation.Generator. It returns
// canned values or delegates to per-method functions, and records every
// request it receives:
//
//	gen := mocks.NewMockGeneratorWithDefaults()
//	gen.GenerateQuizFn = func(ctx context.Context, req generation.QuizRequest) (*domain.Quiz, error) {
//	    return nil, generation.ErrMalformedGeneration
//	}
//	sh, _ := shell.New(gen, opts)
//	// ...
//	assert.Len(t, gen.QuizCalls(), 1)
package mocks
