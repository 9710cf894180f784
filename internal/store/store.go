package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gimbotech/certifier/internal/models"
	"github.com/gimbotech/certifier/internal/numbering"
	"gorm.io/gorm"
)

// ErrNotFound reports that a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Store is the database repository for documents, templates,
// certificates and operator accounts.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func wrapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// ---- raw documents ----

func (s *Store) CreateRawDocument(ctx context.Context, doc *models.RawDocument) error {
	return s.db.WithContext(ctx).Create(doc).Error
}

func (s *Store) RawDocumentByID(ctx context.Context, id uint) (*models.RawDocument, error) {
	var doc models.RawDocument
	if err := s.db.WithContext(ctx).First(&doc, id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &doc, nil
}

func (s *Store) ListRawDocuments(ctx context.Context) ([]models.RawDocument, error) {
	var docs []models.RawDocument
	err := s.db.WithContext(ctx).Order("uploaded_at DESC").Find(&docs).Error
	return docs, err
}

func (s *Store) DeleteRawDocument(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.RawDocument{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ---- templates ----

func (s *Store) CreateTemplate(ctx context.Context, tpl *models.CertificateTemplate) error {
	return s.db.WithContext(ctx).Create(tpl).Error
}

func (s *Store) TemplateByID(ctx context.Context, id uint) (*models.CertificateTemplate, error) {
	var tpl models.CertificateTemplate
	if err := s.db.WithContext(ctx).First(&tpl, id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &tpl, nil
}

func (s *Store) ListTemplates(ctx context.Context) ([]models.CertificateTemplate, error) {
	var tpls []models.CertificateTemplate
	err := s.db.WithContext(ctx).Order("uploaded_at DESC").Find(&tpls).Error
	return tpls, err
}

func (s *Store) DeleteTemplate(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.CertificateTemplate{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ---- certificates ----

// CreateCertificate allocates the next certificate number and inserts the
// record in one transaction. The build callback renders the document with
// the allocated number before the insert, so a failed render rolls the
// whole thing back and the number is never consumed.
func (s *Store) CreateCertificate(ctx context.Context, cert *models.GeneratedCertificate, startNumber *int, build func(number int) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last int
		err := tx.Model(&models.GeneratedCertificate{}).
			Select("COALESCE(MAX(certificate_number), 0)").
			Scan(&last).Error
		if err != nil {
			return fmt.Errorf("reading last certificate number: %w", err)
		}
		number := numbering.Next(last, startNumber)
		if err := build(number); err != nil {
			return err
		}
		cert.CertificateNumber = number
		if err := tx.Create(cert).Error; err != nil {
			return fmt.Errorf("inserting certificate %d: %w", number, err)
		}
		return nil
	})
}

func (s *Store) SaveCertificate(ctx context.Context, cert *models.GeneratedCertificate) error {
	return s.db.WithContext(ctx).Save(cert).Error
}

func (s *Store) CertificateByID(ctx context.Context, id uint) (*models.GeneratedCertificate, error) {
	var cert models.GeneratedCertificate
	if err := s.db.WithContext(ctx).First(&cert, id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &cert, nil
}

func (s *Store) ListCertificates(ctx context.Context) ([]models.GeneratedCertificate, error) {
	var certs []models.GeneratedCertificate
	err := s.db.WithContext(ctx).Order("certificate_number DESC").Find(&certs).Error
	return certs, err
}

func (s *Store) DeleteCertificate(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.GeneratedCertificate{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) MaxCertificateNumber(ctx context.Context) (int, error) {
	var last int
	err := s.db.WithContext(ctx).Model(&models.GeneratedCertificate{}).
		Select("COALESCE(MAX(certificate_number), 0)").
		Scan(&last).Error
	return last, err
}

// ---- operator accounts ----

func (s *Store) CreateUser(ctx context.Context, user *models.UserAuth) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*models.UserAuth, error) {
	var user models.UserAuth
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &user, nil
}

func (s *Store) TouchLastLogin(ctx context.Context, userID string) error {
	now := time.Now().UTC()
	return s.db.WithContext(ctx).Model(&models.UserAuth{}).
		Where("id = ?", userID).
		Update("last_login", &now).Error
}
