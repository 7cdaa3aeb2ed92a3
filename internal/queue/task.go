package queue

type NotificationType string

const (
	NotificationInvitationCreated NotificationType = "invitation.created"
)

// Notification is an outbound event for an out-of-process deliverer
// (invitation email, for now). Fields marshal into flat stream values.
type Notification struct {
	Type        NotificationType
	WorkspaceID int64
	Email       string
	Role        string
	Link        string
	InvitedBy   *int64
	TraceID     *string
}
