package model

// Notification is a title/content pair relayed to the user's device.
type Notification struct {
	Title    string
	Content  string
	Template string // webhook rendering template, e.g. "txt"; empty uses the provider default
}
