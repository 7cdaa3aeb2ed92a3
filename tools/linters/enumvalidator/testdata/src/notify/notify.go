package notify

type NotificationType string

const NotificationTypeInvitation NotificationType = "workspace_invitation"

type Notification struct {
	Type    NotificationType
	Subject string
}

// Grant has a plain string Role, which is not a closed enum.
type Grant struct {
	Role string
}

func build() []Notification {
	out := []Notification{
		{Type: "workspace_invitation"}, // want "enum field Type assigned string literal"
		{Type: NotificationTypeInvitation, Subject: "join us"},
	}

	var n Notification
	n.Type, n.Subject = "digest", "weekly" // want "enum field Type assigned string literal"

	// Explicit conversions are deliberate and allowed.
	n.Type = NotificationType("digest")

	g := Grant{Role: "OWNER"}
	g.Role = "ADMIN"
	_ = g

	return append(out, n)
}
