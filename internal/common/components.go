package common

const (
	ComponentOrchestrator = "orchestrator"
	ComponentPoller       = "poller"
	ComponentProcessor    = "processor"
	ComponentStore        = "store"
	ComponentRPC          = "rpc"
	ComponentDedup        = "dedup"
	ComponentPool         = "pool"
	ComponentAPI          = "api"
	ComponentMetrics      = "metrics"
)

var AllComponents = map[string]struct{}{
	ComponentOrchestrator: {},
	ComponentPoller:       {},
	ComponentProcessor:    {},
	ComponentStore:        {},
	ComponentRPC:          {},
	ComponentDedup:        {},
	ComponentPool:         {},
	ComponentAPI:          {},
	ComponentMetrics:      {},
}
