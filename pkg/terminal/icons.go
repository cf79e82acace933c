package terminal

// Icons for terminal output
const (
	IconSuccess = "✅"
	IconError   = "❌"
	IconWarning = "⚠️"
	IconInfo    = "ℹ️"
	IconBuild   = "🔨"
	IconPackage = "📦"
	IconDevice  = "📱"
	IconKey     = "🔑"
	IconFolder  = "📂"
	IconCheck   = "✓"
	IconCross   = "✗"
	IconArrow   = "→"
	IconDot     = "•"
)
