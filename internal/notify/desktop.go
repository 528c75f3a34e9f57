package notify

import "github.com/gen2brain/beeep"

// BeeepChannel shows platform-native desktop notifications.
type BeeepChannel struct{}

func (BeeepChannel) Notify(title, body string) error {
	return beeep.Notify(title, body, "")
}
