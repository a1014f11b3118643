package services

import (
	"bytes"
	"context"
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "image/jpeg"
	_ "image/png"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"gorm.io/gorm"

	"github.com/svitoratos/tangocrm-backend/internal/logger"
	"github.com/svitoratos/tangocrm-backend/internal/types"
	"github.com/svitoratos/tangocrm-backend/internal/utils"
)

// AvatarService renders initials avatars for users without a profile photo
// and stores them under the local media directory, which the router serves
// statically at /media.
type AvatarService interface {
	GenerateAndStoreAvatar(ctx context.Context, tx *gorm.DB, user *types.User) error
	StoreUploadedAvatar(ctx context.Context, tx *gorm.DB, user *types.User, raw []byte) error
}

type avatarService struct {
	db       *gorm.DB
	log      *logger.Logger
	mediaDir string
	fontFace font.Face
}

var avatarPalette = []color.NRGBA{
	{R: 0x8B, G: 0x5C, B: 0xF6, A: 0xFF},
	{R: 0x63, G: 0x66, B: 0xF1, A: 0xFF},
	{R: 0x3B, G: 0x82, B: 0xF6, A: 0xFF},
	{R: 0xF5, G: 0x9E, B: 0x0B, A: 0xFF},
	{R: 0xF9, G: 0x73, B: 0x16, A: 0xFF},
	{R: 0x10, G: 0xB9, B: 0x81, A: 0xFF},
	{R: 0xEC, G: 0x48, B: 0x99, A: 0xFF},
}

func NewAvatarService(db *gorm.DB, log *logger.Logger) (AvatarService, error) {
	serviceLog := log.With("service", "AvatarService")

	mediaDir := utils.GetEnv("MEDIA_DIR", "media", log)
	if err := os.MkdirAll(filepath.Join(mediaDir, "avatars"), 0o755); err != nil {
		return nil, fmt.Errorf("could not create media dir: %w", err)
	}

	fontPath := utils.GetEnv("AVATAR_FONT", "", log)
	var face font.Face
	if fontPath != "" {
		loaded, err := loadFontFace(fontPath, 100)
		if err != nil {
			return nil, fmt.Errorf("could not load avatar font: %w", err)
		}
		face = loaded
	}

	return &avatarService{
		db:       db,
		log:      serviceLog,
		mediaDir: mediaDir,
		fontFace: face,
	}, nil
}

func loadFontFace(path string, points float64) (font.Face, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	parsed, err := truetype.Parse(raw)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(parsed, &truetype.Options{Size: points}), nil
}

func (as *avatarService) GenerateAndStoreAvatar(ctx context.Context, tx *gorm.DB, user *types.User) error {
	if as.fontFace == nil {
		return fmt.Errorf("avatar font not configured")
	}
	const size = 256

	dc := gg.NewContext(size, size)
	dc.DrawCircle(float64(size)/2, float64(size)/2, float64(size)/2)
	dc.Clip()

	base := pickAvatarColor(user.FirstName + user.LastName + user.Email)
	user.AvatarColor = fmt.Sprintf("#%02X%02X%02X", base.R, base.G, base.B)
	dc.SetColor(base)
	dc.DrawRectangle(0, 0, float64(size), float64(size))
	dc.Fill()

	initials := computeInitials(user.FirstName, user.LastName)
	dc.SetFontFace(as.fontFace)
	tw, th := dc.MeasureString(initials)
	dc.SetColor(color.White)
	dc.DrawString(initials, float64(size)/2-tw/2, float64(size)/2+th/2)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return as.storeAvatar(tx, user, buf.Bytes())
}

func (as *avatarService) StoreUploadedAvatar(ctx context.Context, tx *gorm.DB, user *types.User, raw []byte) error {
	const size = 256

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}

	// Center-crop to square before scaling.
	b := img.Bounds()
	side := b.Dx()
	if b.Dy() < side {
		side = b.Dy()
	}
	x0 := b.Min.X + (b.Dx()-side)/2
	y0 := b.Min.Y + (b.Dy()-side)/2
	cropped := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.Draw(cropped, cropped.Bounds(), img, image.Point{X: x0, Y: y0}, draw.Src)

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), cropped, cropped.Bounds(), draw.Over, nil)

	dc := gg.NewContext(size, size)
	dc.DrawCircle(float64(size)/2, float64(size)/2, float64(size)/2)
	dc.Clip()
	dc.DrawImage(dst, 0, 0)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return as.storeAvatar(tx, user, buf.Bytes())
}

// storeAvatar writes a versioned file so browsers never serve a stale copy,
// persists the new avatar fields, then best-effort deletes the previous one.
func (as *avatarService) storeAvatar(tx *gorm.DB, user *types.User, png []byte) error {
	oldPath := user.AvatarPath
	name := fmt.Sprintf("%s_%d.png", user.ID, time.Now().UnixNano())
	newPath := filepath.Join(as.mediaDir, "avatars", name)
	if err := os.WriteFile(newPath, png, 0o644); err != nil {
		return fmt.Errorf("write avatar: %w", err)
	}
	user.AvatarPath = newPath
	user.AvatarURL = "/media/avatars/" + name

	conn := tx
	if conn == nil {
		conn = as.db
	}
	if err := conn.Model(&types.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"avatar_color": user.AvatarColor,
		"avatar_path":  user.AvatarPath,
		"avatar_url":   user.AvatarURL,
	}).Error; err != nil {
		return fmt.Errorf("persist avatar fields: %w", err)
	}

	if oldPath != "" && oldPath != newPath {
		if err := os.Remove(oldPath); err != nil && !os.IsNotExist(err) {
			as.log.Warn("Failed to delete old avatar (ignored)", "path", oldPath, "error", err)
		}
	}
	return nil
}

func pickAvatarColor(seed string) color.NRGBA {
	h := fnv.New32a()
	_, _ = h.Write([]byte(seed))
	return avatarPalette[h.Sum32()%uint32(len(avatarPalette))]
}

func computeInitials(firstName, lastName string) string {
	var b strings.Builder
	if firstName != "" {
		b.WriteString(strings.ToUpper(firstName[:1]))
	}
	if lastName != "" {
		b.WriteString(strings.ToUpper(lastName[:1]))
	}
	if b.Len() == 0 {
		return "?"
	}
	return b.String()
}
