package config

type Telegram struct {
	// BotToken is the shared secret used both for the bot transport and
	// for initData signature verification.
	BotToken string `env:"BOT_TOKEN"`

	// OwnerID is the Telegram identity that always carries the owner role.
	OwnerID int64 `env:"OWNER_ID"`

	// WebAppURL is the address the /start button points at.
	WebAppURL string `env:"WEBAPP_URL,expand"`
}
