package entity

// Identity is what the identity collaborator knows about a signed-in user.
// It is mirrored into the User profile on every sign-in.
type Identity struct {
	UID         string
	Email       string
	DisplayName string
	PhotoURL    string
}
