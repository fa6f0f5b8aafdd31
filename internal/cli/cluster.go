package cli

import (
	"github.com/bji/solxact/internal/clierr"
	"github.com/bji/solxact/internal/config"
)

// clusterArg resolves the optional single positional [URL|alias] argument
// shared by hash/simulate/submit into an RPC URL. Zero arguments default to
// mainnet (the original CLI's get_rpc_url does the same); more than one is
// rejected, since the grammar only ever names a single cluster argument.
func clusterArg(args []string) (string, error) {
	switch len(args) {
	case 0:
		return config.ResolveClusterURL(config.AliasMainnet)
	case 1:
		return config.ResolveClusterURL(args[0])
	default:
		return "", clierr.New(clierr.KindParse, "expected at most one cluster argument, got %d", len(args))
	}
}
