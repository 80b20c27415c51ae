package config

import "git.home.luguber.info/inful/profilekit/internal/foundation/normalization"

// HealthSource selects the system health provider.
type HealthSource string

const (
	HealthSourceRandom HealthSource = "random"
	HealthSourceStatic HealthSource = "static"
)

var healthSourceNormalizer = normalization.NewNormalizer(map[string]HealthSource{
	"random": HealthSourceRandom,
	"static": HealthSourceStatic,
}, HealthSourceRandom)

// AnchorPosition says where a missing section is inserted relative to its anchor.
type AnchorPosition string

const (
	AnchorBefore AnchorPosition = "before"
	AnchorAfter  AnchorPosition = "after"
)

var anchorPositionNormalizer = normalization.NewNormalizer(map[string]AnchorPosition{
	"before": AnchorBefore,
	"after":  AnchorAfter,
}, AnchorBefore)
