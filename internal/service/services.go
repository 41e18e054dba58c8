package service

import (
	"CourseForge/internal/service/auth"
	"CourseForge/internal/service/authoring"
	"CourseForge/internal/service/outline"
	"CourseForge/internal/storage/elastic"
	"CourseForge/internal/storage/minio_storage"
)

type Collection struct {
	AuthService    *auth.AuthService
	WizardService  *authoring.WizardService
	OutlineService *outline.Service
	MediaStorage   *minio_storage.MediaStorage
	Catalog        *elastic.CatalogRepo
}
