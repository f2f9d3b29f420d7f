package bot

// Command constants for Telegram bot commands.
const (
	CommandStart = "/start"
	CommandHelp  = "/help"
	CommandBuy   = "/buy"
)

// Callback prefix constants for inline button interactions.
const (
	CallbackBuy = "buy:"
)
