package match

import (
	"github.com/candorlabs/qanswer/core"
	"github.com/candorlabs/qanswer/search"
)

// MatchMonitor provides hooks to observe the matching pipeline.
// Implement this interface to track intermediate steps and results during
// a match.
type MatchMonitor interface {
	Start(question string)
	Intercepted(question string)
	AfterRetrieval(candidates []search.Scored)
	AfterRerank(conceptList []string, ranked []search.Scored)
	AfterEvidence(evidence []core.EvidenceSnippet)
	SynthesisFallback(err error)
	Finish(result *core.MatchResult)
}

// noopMonitor is a no-op implementation of MatchMonitor
type noopMonitor struct{}

var _ MatchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                            {}
func (n *noopMonitor) Intercepted(_ string)                      {}
func (n *noopMonitor) AfterRetrieval(_ []search.Scored)          {}
func (n *noopMonitor) AfterRerank(_ []string, _ []search.Scored) {}
func (n *noopMonitor) AfterEvidence(_ []core.EvidenceSnippet)    {}
func (n *noopMonitor) SynthesisFallback(_ error)                 {}
func (n *noopMonitor) Finish(_ *core.MatchResult)                {}
