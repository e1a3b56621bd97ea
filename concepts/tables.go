// Copyright 2025 Candor Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package concepts

// Concept identifiers shared between the extractor and the re-ranker.
const (
	ConceptFrontend        = "frontend"
	ConceptBackend         = "backend"
	ConceptAPIPlatform     = "api_platform"
	ConceptBuildDevelop    = "build_develop"
	ConceptHosting         = "hosting"
	ConceptBankHost        = "bank_host"
	ConceptProviderHost    = "provider_host"
	ConceptOnPrem          = "on_prem"
	ConceptSDK             = "sdk"
	ConceptCommunity       = "community"
	ConceptSSO             = "sso"
	ConceptCICD            = "ci_cd"
	ConceptAnalytics       = "analytics"
	ConceptCustody         = "custody"
	ConceptTrading         = "trading"
	ConceptCharting        = "charting"
	ConceptKYCAML          = "kyc_aml"
	ConceptSettlement      = "settlement"
	ConceptStaking         = "staking"
	ConceptBankIntegration = "bank_integration"
)

// conceptOrder fixes the scan order over the vocabulary so that extraction
// results are deterministic.
var conceptOrder = []string{
	ConceptFrontend, ConceptBackend, ConceptAPIPlatform, ConceptBuildDevelop,
	ConceptHosting, ConceptBankHost, ConceptProviderHost, ConceptOnPrem,
	ConceptSDK, ConceptCommunity, ConceptSSO, ConceptCICD, ConceptAnalytics,
	ConceptCustody, ConceptTrading, ConceptCharting, ConceptKYCAML,
	ConceptSettlement, ConceptStaking, ConceptBankIntegration,
}

// DefaultMappings returns the concept vocabulary: for each concept, the
// trigger phrases that mark a question or answer as touching it. Callers
// may mutate the returned map; each call builds a fresh copy.
func DefaultMappings() map[string][]string {
	return map[string][]string{
		ConceptFrontend:     {"front-end", "frontend", "ui", "user interface", "mobile app", "web app", "customer journey", "ux"},
		ConceptBackend:      {"back-end", "backend", "api", "server", "infrastructure"},
		ConceptAPIPlatform:  {"api-first", "rest api", "apis", "websocket", "integration"},
		ConceptBuildDevelop: {"develop", "build", "implement", "create", "ownership"},

		ConceptHosting:      {"host", "deploy", "cloud", "aws", "saas", "on-premise", "on prem", "infrastructure"},
		ConceptBankHost:     {"bank host"},
		ConceptProviderHost: {"hosted on", "aws", "cloud"},
		ConceptOnPrem:       {"on-premise", "on prem", "self-hosted", "private cloud"},

		ConceptSDK: {"sdk", "library", "connector", "not recommend sdk", "single point of failure"},

		ConceptCommunity: {"community", "resources", "partnerships", "bank partners", "wio", "adcb"},

		ConceptSSO:  {"sso", "single sign", "oauth", "authentication", "jwt"},
		ConceptCICD: {"ci/cd", "cicd", "pipeline", "deployment", "devops"},

		ConceptAnalytics: {"analytics", "reporting", "metrics", "kpi", "dashboard"},

		ConceptCustody: {"custody", "wallet", "hsm", "mpc", "fireblocks", "segregat"},

		ConceptTrading:  {"trading", "order", "execution", "coins", "crypto", "asset"},
		ConceptCharting: {"chart", "technical indicator", "graph"},

		ConceptKYCAML: {"kyc", "aml", "compliance", "regulatory"},

		ConceptSettlement: {"settlement", "reconciliation", "transaction"},

		ConceptStaking: {"staking", "yield", "savings", "earn"},

		ConceptBankIntegration: {"casa", "fiat", "deposit", "withdrawal", "bank integration"},
	}
}

// DefaultBoosts returns, per concept, the answer phrases whose presence
// marks the answer as directly addressing that concept.
func DefaultBoosts() map[string][]string {
	return map[string][]string{
		ConceptFrontend:     {"bank owns", "bank retains", "control over ui", "customer journey", "api-first", "bank builds", "ownership"},
		ConceptBackend:      {"api-first", "rest api", "websocket", "infrastructure"},
		ConceptHosting:      {"aws", "cloud", "me-central", "uae", "saas", "hosted on", "public cloud"},
		ConceptSDK:          {"not recommend sdk", "rest api", "single point of failure", "not recommend", "webhook", "do not recommend", "api-first"},
		ConceptCommunity:    {"wio", "adcb", "ruya", "partnerships", "bank partners"},
		ConceptAnalytics:    {"kpi", "metrics", "reporting", "dashboard", "track", "grafana"},
		ConceptBuildDevelop: {"bank owns", "bank develops", "ownership", "api-first", "integrate"},
		ConceptOnPrem:       {"cloud-hosted", "aws", "public cloud", "me-central", "saas solution", "hosted on"},
		ConceptProviderHost: {"aws", "me-central", "public cloud", "hosted on", "saas"},
		ConceptSSO:          {"authentication", "oauth", "jwt", "single sign"},
		ConceptCICD:         {"ci/cd", "pipeline", "deployment", "automated", "docker", "ecs"},
		ConceptCustody:      {"fireblocks", "hsm", "mpc", "wallet", "segregat", "cold storage"},
	}
}
