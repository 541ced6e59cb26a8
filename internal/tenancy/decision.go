package tenancy

// Action is what the edge pipeline should do with a request.
type Action string

const (
	PassThrough Action = "pass_through"
	Rewrite     Action = "rewrite"
)

// Reason labels the rule that produced a decision.
type Reason string

const (
	ReasonExcludedPrefix     Reason = "excluded_prefix"
	ReasonForeignDomain      Reason = "foreign_domain"
	ReasonNoSubdomain        Reason = "no_subdomain"
	ReasonReservedToken      Reason = "reserved_token"
	ReasonUnknownTenant      Reason = "unknown_tenant"
	ReasonRootPath           Reason = "root_path"
	ReasonNonRootPassthrough Reason = "non_root_passthrough"
	ReasonNonRootRewrite     Reason = "non_root_rewrite"
	ReasonAssetPath          Reason = "asset_path"
)

// Decision is the resolver's answer for one request. Path is set only when
// Action is Rewrite; Tenant is set whenever a registry entry matched.
// Subdomain is the extracted host token, empty when the host had none.
type Decision struct {
	Action    Action  `json:"action"`
	Path      string  `json:"path,omitempty"`
	Subdomain string  `json:"subdomain,omitempty"`
	Tenant    *Tenant `json:"tenant,omitempty"`
	Reason    Reason  `json:"reason"`
}

func (d Decision) Rewritten() bool {
	return d.Action == Rewrite
}

func passThrough(reason Reason) Decision {
	return Decision{Action: PassThrough, Reason: reason}
}
