package envskema

import "github.com/reoring/envskema/schema"

// Port is an integer in [0, 65535].
func Port() *schema.NumberSchema { return schema.Int().Nonnegative().Max(65535) }

// URL is a string that validates as an absolute URL.
func URL() *schema.StringSchema { return schema.String().URL() }

// Email is a string that validates as an email address.
func Email() *schema.StringSchema { return schema.String().Email() }

// Host is a hostname (RFC 1123) or an IP address.
func Host() *schema.StringSchema { return schema.String().Format("hostname_rfc1123|ip") }
