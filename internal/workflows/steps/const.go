package steps

const (
	AlreadyInstalled     = "alreadyInstalled"
	AlreadyConfigured    = "alreadyConfigured"
	AlreadyActive        = "alreadyActive"
	AlreadyMember        = "alreadyMember"
	DownloadedByThisStep = "downloaded"
	ExtractedByThisStep  = "extracted"
	InstalledByThisStep  = "installed"
	ConfiguredByThisStep = "configured"
)
