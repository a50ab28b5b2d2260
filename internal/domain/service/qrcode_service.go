package service

// QRCodeService renders sign-in links as QR code images.
type QRCodeService interface {
	// GenerateInviteQR encodes the sign-in URL, with the invite code when one is set, as a PNG.
	GenerateInviteQR(inviteCode string) ([]byte, error)

	// InviteURL returns the link the QR code encodes.
	InviteURL(inviteCode string) string
}
