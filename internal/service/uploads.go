package service

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const (
	MaxUploadSize = 5 << 20

	ProofDir   = "payment_proofs"
	PackageDir = "packages"
)

// Upload is a file received from a client.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

var proofTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// checkProof validates a payment proof and returns the file extension to
// store it under.
func checkProof(file *Upload) (string, error) {
	if file == nil || len(file.Data) == 0 {
		return "", ErrProofMissing
	}
	contentType := strings.ToLower(strings.TrimSpace(strings.SplitN(file.ContentType, ";", 2)[0]))
	if !proofTypes[contentType] {
		return "", ErrProofType
	}
	if len(file.Data) > MaxUploadSize {
		return "", ErrProofTooLarge
	}
	if _, err := imaging.Decode(bytes.NewReader(file.Data)); err != nil {
		return "", ErrProofCorrupt
	}
	return mimetype.Lookup(contentType).Extension(), nil
}

// checkPackageImage validates a package image and returns its stored name.
func checkPackageImage(file Upload) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !imageExtensions[ext] {
		return "", ErrImageType
	}
	if len(file.Data) > MaxUploadSize {
		return "", ErrImageTooLarge
	}
	return uuid.NewString() + ext, nil
}
