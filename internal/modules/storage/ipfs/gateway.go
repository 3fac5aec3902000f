package ipfs

import "strings"

// ResolveGatewayURL turns ipfs://X into gateway+X. Any other input is
// returned unchanged.
func ResolveGatewayURL(gateway, uri string) string {
	if !strings.HasPrefix(uri, uriScheme) {
		return uri
	}
	return gateway + strings.TrimPrefix(uri, uriScheme)
}
