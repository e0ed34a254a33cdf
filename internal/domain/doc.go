// Package domain contains the core model for the depth-profile tables and the
// startup configuration of the user-function plugins.
//
// The domain does not depend on XML/YAML parsing or the filesystem. Infra
// adapters map into these types.
package domain
