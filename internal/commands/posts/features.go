package postscmd

// FeatureGates exposes runtime feature toggles required by post command handlers.
// Callers should supply closures that read from the host configuration so handlers
// stay decoupled from config while honouring feature flags.
type FeatureGates struct {
	StoreEnabled   func() bool
	ArchiveEnabled func() bool
}

func (g FeatureGates) storeEnabled() bool {
	if g.StoreEnabled == nil {
		return true
	}
	return g.StoreEnabled()
}

func (g FeatureGates) archiveEnabled() bool {
	if g.ArchiveEnabled == nil {
		return true
	}
	return g.ArchiveEnabled()
}
