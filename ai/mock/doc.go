// Package mock provides a test double implementation of ai.Synthesizer.
//
// The mock lets matching-pipeline tests run without an external chat
// service and with fully controlled behavior.
//
// # Usage in Tests
//
//	// Default behavior: echo the top evidence snippet.
//	synth := mock.NewMockSynthesizer()
//
//	// Custom behavior injection.
//	synth.SynthesizeFunc = func(ctx context.Context, question string, evidence []core.EvidenceSnippet, category string) (*ai.SynthesisResult, error) {
//	    return nil, errors.New("service unavailable")
//	}
//
//	// Check call counts.
//	count := synth.CallCount()
package mock
