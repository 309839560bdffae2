package dto

type NotificationVariant string

const (
	NotificationDefault     NotificationVariant = "default"
	NotificationDestructive NotificationVariant = "destructive"
)

// Notification is a short transient message about the outcome of an action.
type Notification struct {
	Title       string
	Description string
	Variant     NotificationVariant
}

func (n Notification) Destructive() bool {
	return n.Variant == NotificationDestructive
}
