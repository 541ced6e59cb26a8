package tenancy

import "errors"

var (
	ErrInvalidSubdomain     = errors.New("invalid tenant subdomain")
	ErrInvalidSlug          = errors.New("invalid tenant slug")
	ErrDuplicateSubdomain   = errors.New("duplicate tenant subdomain")
	ErrInvalidPolicy        = errors.New("invalid non-root policy")
	ErrInvalidDomain        = errors.New("invalid root domain")
	ErrInvalidLandingPrefix = errors.New("invalid landing prefix")
	ErrTenantNotFound       = errors.New("tenant not found")
)
