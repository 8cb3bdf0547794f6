package fixturedb

import (
	"github.com/qemer/lms/core/announcement"
)

type announcementRepository struct {
	db *DB
}

func NewAnnouncementRepository(db *DB) announcement.Repository {
	return &announcementRepository{db: db}
}

func (repo *announcementRepository) QueryAllAnnouncements() ([]announcement.Announcement, error) {
	return append([]announcement.Announcement(nil), repo.db.announcements...), nil
}
