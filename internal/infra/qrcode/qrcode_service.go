package qrcode

import (
	"net/url"
	"strings"

	"didilikeit/config"
	"didilikeit/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
)

const loginPath = "/auth/login"

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
	baseURL              string
}

// NewQRCodeServiceFromConfig builds the service from the qrcode config section.
func NewQRCodeServiceFromConfig(cfg *config.Config) service.QRCodeService {
	return NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel, cfg.QRCode.BaseURL)
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(size int, errorCorrectionLevel, baseURL string) service.QRCodeService {
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
		baseURL:              strings.TrimRight(baseURL, "/"),
	}
}

// InviteURL points at the login page, carrying the invite code when one is set.
func (s *qrcodeService) InviteURL(inviteCode string) string {
	link := s.baseURL + loginPath
	if inviteCode == "" {
		return link
	}

	return link + "?" + url.Values{"invite": {inviteCode}}.Encode()
}

// GenerateInviteQR renders InviteURL as a PNG.
func (s *qrcodeService) GenerateInviteQR(inviteCode string) ([]byte, error) {
	qrCode, err := qrcode.New(s.InviteURL(inviteCode), s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate PNG")
	}

	return pngBytes, nil
}
