// Package internal contains process-wide infrastructure shared by the
// pocketvault packages: logging and the CA trust store.
// Types and functions in this package are not part of the public API.
package internal

import _ "github.com/BrandonKowalski/certifiable" // Add CA certificates to the default trust store
